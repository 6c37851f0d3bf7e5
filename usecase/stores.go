package usecase

import (
	"context"
	"time"

	"main/model"
)

// Store interfaces consumed by the services in this package. The Mongo
// implementations live in the repository package; tests substitute in-memory
// fakes.

type TaskStore interface {
	// ListActive returns all of the user's tasks with subtasks attached,
	// read as one snapshot per call.
	ListActive(ctx context.Context, userID string) ([]*model.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, taskID, userID string) error
	// UpdateEstimate writes back a reconciled parent estimate. Kept separate
	// from UpdateTask so the ranking pipeline's sync step is an explicit,
	// narrow write.
	UpdateEstimate(ctx context.Context, taskID, userID string, estimateMin int) error

	GetSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, error)
	SaveSubtask(ctx context.Context, subtask *model.Subtask) error
	ListSubtasks(ctx context.Context, taskID string) ([]*model.Subtask, error)
}

type FocusLogStore interface {
	Insert(ctx context.Context, log *model.FocusLog) error
	// Overlapping selects logs with started_at < end AND stopped_at > start.
	Overlapping(ctx context.Context, userID string, start, end time.Time) ([]*model.FocusLog, error)
	Since(ctx context.Context, userID string, since time.Time) ([]*model.FocusLog, error)
	TotalForTask(ctx context.Context, userID, taskID string) (int64, error)
}

type ProfileStore interface {
	// Get creates the profile with defaults on first access.
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
	ReplaceDiagnosis(ctx context.Context, userID string, answers []model.DiagnosisAnswer) error
}

// SortLogSink records ranking audit entries. Writes are best-effort; callers
// log and swallow failures.
type SortLogSink interface {
	Record(ctx context.Context, log *model.SortLog) error
}
