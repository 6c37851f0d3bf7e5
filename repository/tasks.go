package repository

import (
	"context"
	"os"
	"sort"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TasksRepo struct {
	Tasks    *mongo.Collection
	Subtasks *mongo.Collection
}

// Retrieves MongoDB collections for tasks and subtasks
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	db := client.Database(dbName)
	return &TasksRepo{
		Tasks:    db.Collection(os.Getenv("TASKS_COLLECTION")),
		Subtasks: db.Collection(os.Getenv("SUBTASKS_COLLECTION")),
	}
}

// ListActive returns all tasks of the user with their subtasks attached,
// fetched as one snapshot per call.
func (r *TasksRepo) ListActive(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var tasks []*model.Task
	cursor, err := r.Tasks.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	ids := make([]string, len(tasks))
	byID := make(map[string]*model.Task, len(tasks))
	for i, t := range tasks {
		ids[i] = t.TaskID
		byID[t.TaskID] = t
	}

	subCursor, err := r.Subtasks.Find(ctx, bson.M{"task_id": bson.M{"$in": ids}})
	if err != nil {
		utils.TrackError("database", "subtask_fetch_failed")
		return nil, err
	}
	defer subCursor.Close(ctx)

	var subtasks []*model.Subtask
	if err = subCursor.All(ctx, &subtasks); err != nil {
		utils.TrackError("database", "subtask_decode_failed")
		return nil, err
	}
	for _, st := range subtasks {
		if parent, ok := byID[st.TaskID]; ok {
			parent.Subtasks = append(parent.Subtasks, st)
		}
	}

	// Manual order within the parent, never touched by auto sort.
	for _, t := range tasks {
		sort.SliceStable(t.Subtasks, func(i, j int) bool {
			if t.Subtasks[i].OrderIndex != t.Subtasks[j].OrderIndex {
				return t.Subtasks[i].OrderIndex < t.Subtasks[j].OrderIndex
			}
			return t.Subtasks[i].CreatedAt.Before(t.Subtasks[j].CreatedAt)
		})
	}

	return tasks, nil
}

// GetTask fetches one task owned by the user; nil when absent.
func (r *TasksRepo) GetTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var task model.Task
	err := r.Tasks.FindOne(ctx, bson.M{"_id": taskID, "user_id": userID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "task_lookup_error")
		return nil, err
	}

	subtasks, err := r.ListSubtasks(ctx, task.TaskID)
	if err != nil {
		return nil, err
	}
	task.Subtasks = subtasks

	return &task, nil
}

// CreateTask inserts a new task row
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if _, err := r.Tasks.InsertOne(ctx, task); err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}
	return nil
}

// UpdateTask replaces the stored task document
func (r *TasksRepo) UpdateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": task.TaskID, "user_id": task.UserID}
	update := bson.M{
		"$set": bson.M{
			"title":        task.Title,
			"deadline":     task.Deadline,
			"estimate_min": task.EstimateMin,
			"tags":         task.Tags,
			"importance":   task.Importance,
			"status":       task.Status,
			"started_at":   task.StartedAt,
			"completed_at": task.CompletedAt,
			"updated_at":   task.UpdatedAt,
		},
	}

	result, err := r.Tasks.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateEstimate writes back a reconciled parent estimate only.
func (r *TasksRepo) UpdateEstimate(ctx context.Context, taskID, userID string, estimateMin int) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": taskID, "user_id": userID}
	update := bson.M{"$set": bson.M{"estimate_min": estimateMin}}

	_, err := r.Tasks.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "estimate_sync_failed")
	}
	return err
}

// DeleteTask removes a task and cascades to its subtasks.
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	result, err := r.Tasks.DeleteOne(ctx, bson.M{"_id": taskID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return mongo.ErrNoDocuments
	}

	if _, err := r.Subtasks.DeleteMany(ctx, bson.M{"task_id": taskID}); err != nil {
		utils.TrackError("database", "subtask_cascade_failed")
		return err
	}
	return nil
}

// GetSubtask fetches one subtask, verifying ownership through its parent.
func (r *TasksRepo) GetSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, error) {
	timer := utils.TrackDBOperation("find", "subtasks")
	defer timer.ObserveDuration()

	var st model.Subtask
	err := r.Subtasks.FindOne(ctx, bson.M{"_id": subtaskID}).Decode(&st)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "subtask_lookup_error")
		return nil, err
	}

	// Owner check against the parent task
	count, err := r.Tasks.CountDocuments(ctx, bson.M{"_id": st.TaskID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	return &st, nil
}

// SaveSubtask inserts or replaces a subtask row
func (r *TasksRepo) SaveSubtask(ctx context.Context, subtask *model.Subtask) error {
	timer := utils.TrackDBOperation("upsert", "subtasks")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": subtask.SubtaskID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.Subtasks.ReplaceOne(ctx, filter, subtask, opts); err != nil {
		utils.TrackError("database", "subtask_save_failed")
		return err
	}
	return nil
}

// ListSubtasks returns a task's subtasks in manual order.
func (r *TasksRepo) ListSubtasks(ctx context.Context, taskID string) ([]*model.Subtask, error) {
	timer := utils.TrackDBOperation("find", "subtasks")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{
		{Key: "order_index", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.Subtasks.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		utils.TrackError("database", "subtask_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var subtasks []*model.Subtask
	if err = cursor.All(ctx, &subtasks); err != nil {
		utils.TrackError("database", "subtask_decode_failed")
		return nil, err
	}
	return subtasks, nil
}
