package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes every collection relies on. Called once at
// startup; creation is idempotent.
func SetupIndexes(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(os.Getenv("MONGO_DB"))

	indexes := map[string][]mongo.IndexModel{
		os.Getenv("USERS_COLLECTION"): {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		os.Getenv("TASKS_COLLECTION"): {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "deadline", Value: 1}}},
		},
		os.Getenv("SUBTASKS_COLLECTION"): {
			{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "order_index", Value: 1}}},
		},
		os.Getenv("FOCUS_LOGS_COLLECTION"): {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "started_at", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "task_id", Value: 1}}},
		},
		os.Getenv("PROFILES_COLLECTION"): {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		os.Getenv("DIAGNOSIS_COLLECTION"): {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		os.Getenv("SORT_LOGS_COLLECTION"): {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "sorted_at", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
		log.Printf("Indexes ensured for collection %s", coll)
	}
	return nil
}
