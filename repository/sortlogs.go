package repository

import (
	"context"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type SortLogsRepo struct {
	Logs *mongo.Collection
}

// Retrieves the MongoDB collection for sort audit entries
func GetSortLogsRepo(client *mongo.Client) *SortLogsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &SortLogsRepo{
		Logs: client.Database(dbName).Collection(os.Getenv("SORT_LOGS_COLLECTION")),
	}
}

// Record appends one ranking audit entry.
func (r *SortLogsRepo) Record(ctx context.Context, log *model.SortLog) error {
	timer := utils.TrackDBOperation("insert", "sort_logs")
	defer timer.ObserveDuration()

	if _, err := r.Logs.InsertOne(ctx, log); err != nil {
		utils.TrackError("database", "sort_log_insert_failed")
		return err
	}
	return nil
}
