package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FocusLogsRepo struct {
	Logs *mongo.Collection
}

// Retrieves the MongoDB collection for focus logs
func GetFocusLogsRepo(client *mongo.Client) *FocusLogsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &FocusLogsRepo{
		Logs: client.Database(dbName).Collection(os.Getenv("FOCUS_LOGS_COLLECTION")),
	}
}

// Insert appends one focus interval; rows are never updated afterward.
func (r *FocusLogsRepo) Insert(ctx context.Context, log *model.FocusLog) error {
	timer := utils.TrackDBOperation("insert", "focus_logs")
	defer timer.ObserveDuration()

	if _, err := r.Logs.InsertOne(ctx, log); err != nil {
		utils.TrackError("database", "focus_log_insert_failed")
		return err
	}
	return nil
}

// Overlapping returns logs intersecting [start, end): started_at < end AND
// stopped_at > start.
func (r *FocusLogsRepo) Overlapping(ctx context.Context, userID string, start, end time.Time) ([]*model.FocusLog, error) {
	timer := utils.TrackDBOperation("find", "focus_logs")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"started_at": bson.M{"$lt": end},
		"stopped_at": bson.M{"$gt": start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})

	cursor, err := r.Logs.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "focus_log_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*model.FocusLog
	if err = cursor.All(ctx, &logs); err != nil {
		utils.TrackError("database", "focus_log_decode_failed")
		return nil, err
	}
	return logs, nil
}

// Since returns logs whose interval started at or after the given time.
func (r *FocusLogsRepo) Since(ctx context.Context, userID string, since time.Time) ([]*model.FocusLog, error) {
	timer := utils.TrackDBOperation("find", "focus_logs")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"started_at": bson.M{"$gte": since},
	}
	cursor, err := r.Logs.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "focus_log_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*model.FocusLog
	if err = cursor.All(ctx, &logs); err != nil {
		utils.TrackError("database", "focus_log_decode_failed")
		return nil, err
	}
	return logs, nil
}

// TotalForTask sums the recorded seconds of one task across all its logs.
func (r *FocusLogsRepo) TotalForTask(ctx context.Context, userID, taskID string) (int64, error) {
	timer := utils.TrackDBOperation("aggregate", "focus_logs")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "task_id": taskID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$seconds"},
		}}},
	}

	cursor, err := r.Logs.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "focus_log_aggregate_failed")
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	if err = cursor.All(ctx, &result); err != nil {
		utils.TrackError("database", "focus_log_decode_failed")
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}
