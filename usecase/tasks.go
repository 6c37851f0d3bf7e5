package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/utils"

	"github.com/google/uuid"
)

const DefaultSubtaskEstimateMin = 15

type TaskService struct {
	tasks TaskStore
	logs  FocusLogStore
	clock utils.Clock
}

func NewTaskService(tasks TaskStore, logs FocusLogStore, clock utils.Clock) *TaskService {
	return &TaskService{
		tasks: tasks,
		logs:  logs,
		clock: clock,
	}
}

// ListTasks returns the user's tasks with subtasks attached.
func (svc *TaskService) ListTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return svc.tasks.ListActive(ctx, userID)
}

// CreateTask validates and stores a new task.
func (svc *TaskService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if task.Title == "" {
		return errors.New("title is required")
	}
	if task.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	if task.EstimateMin < 5 {
		return errors.New("estimate must be at least 5 minutes")
	}
	if task.Importance < 0 || task.Importance > 3 {
		return errors.New("importance must be between 0 and 3")
	}

	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}
	task.Status = model.StatusTodo
	task.StartedAt = nil
	task.CompletedAt = nil

	now := svc.clock.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := svc.tasks.CreateTask(ctx, task); err != nil {
		return err
	}
	utils.TrackTaskOperation("create")
	return nil
}

// UpdateTask patches the editable fields of an existing task.
func (svc *TaskService) UpdateTask(ctx context.Context, taskID, userID string, patch TaskPatch) (*model.Task, error) {
	task, err := svc.ownedTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Deadline != nil {
		if patch.Deadline.IsZero() {
			return nil, errors.New("deadline is required")
		}
		task.Deadline = *patch.Deadline
	}
	if patch.EstimateMin != nil {
		if *patch.EstimateMin < 5 {
			return nil, errors.New("estimate must be at least 5 minutes")
		}
		task.EstimateMin = *patch.EstimateMin
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
	}
	if patch.Importance != nil {
		if *patch.Importance < 0 || *patch.Importance > 3 {
			return nil, errors.New("importance must be between 0 and 3")
		}
		task.Importance = *patch.Importance
	}

	task.UpdatedAt = svc.clock.Now()
	if err := svc.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("update")
	return task, nil
}

// TaskPatch carries the optional fields of a task update; nil means "leave
// unchanged".
type TaskPatch struct {
	Title       *string
	Deadline    *time.Time
	EstimateMin *int
	Tags        *string
	Importance  *int
}

// DeleteTask removes a task and, through the store, its subtasks.
func (svc *TaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	if _, err := svc.ownedTask(ctx, taskID, userID); err != nil {
		return err
	}
	if err := svc.tasks.DeleteTask(ctx, taskID, userID); err != nil {
		return err
	}
	utils.TrackTaskOperation("delete")
	return nil
}

// StartTask moves a task into doing and starts its focus clock. No interval
// is emitted; only stop events close one.
func (svc *TaskService) StartTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	task, err := svc.ownedTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	task.Status = model.StatusDoing
	task.StartedAt = &now
	task.UpdatedAt = now

	if err := svc.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("start")
	return task, nil
}

// PauseTask closes the running focus interval and parks the task.
func (svc *TaskService) PauseTask(ctx context.Context, taskID, userID string) (*model.Task, int64, error) {
	task, err := svc.ownedTask(ctx, taskID, userID)
	if err != nil {
		return nil, 0, err
	}

	now := svc.clock.Now()
	seconds := svc.closeInterval(ctx, task, now)

	task.Status = model.StatusPaused
	task.StartedAt = nil
	task.UpdatedAt = now

	if err := svc.tasks.UpdateTask(ctx, task); err != nil {
		return nil, 0, err
	}
	utils.TrackTaskOperation("pause")
	return task, seconds, nil
}

// ResumeTask closes the running interval, if any, and restarts the clock.
func (svc *TaskService) ResumeTask(ctx context.Context, taskID, userID string) (*model.Task, int64, error) {
	task, err := svc.ownedTask(ctx, taskID, userID)
	if err != nil {
		return nil, 0, err
	}

	now := svc.clock.Now()
	seconds := svc.closeInterval(ctx, task, now)

	task.Status = model.StatusDoing
	task.StartedAt = &now
	task.UpdatedAt = now

	if err := svc.tasks.UpdateTask(ctx, task); err != nil {
		return nil, 0, err
	}
	utils.TrackTaskOperation("resume")
	return task, seconds, nil
}

// CompleteTask closes the running interval when the task was doing, then
// marks it done. completed_at is set exactly once here; started_at clears.
func (svc *TaskService) CompleteTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	task, err := svc.ownedTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	if task.Status == model.StatusDoing {
		svc.closeInterval(ctx, task, now)
	}

	task.Status = model.StatusDone
	task.CompletedAt = &now
	task.StartedAt = nil
	task.UpdatedAt = now

	if err := svc.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("complete")
	return task, nil
}

// TaskFocusTotal sums all recorded focus seconds for one task.
func (svc *TaskService) TaskFocusTotal(ctx context.Context, taskID, userID string) (int64, error) {
	if _, err := svc.ownedTask(ctx, taskID, userID); err != nil {
		return 0, err
	}
	return svc.logs.TotalForTask(ctx, userID, taskID)
}

// BulkUpsertSubtasks creates or patches the given subtasks under one parent.
// The parent's estimate is not synced here; the ranking pipeline reconciles
// it lazily on its next read.
func (svc *TaskService) BulkUpsertSubtasks(ctx context.Context, taskID, userID string, items []*model.Subtask) ([]*model.Subtask, error) {
	if _, err := svc.ownedTask(ctx, taskID, userID); err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	result := make([]*model.Subtask, 0, len(items))
	for _, item := range items {
		if item.SubtaskID == "" {
			st := &model.Subtask{
				SubtaskID:   uuid.New().String(),
				TaskID:      taskID,
				Title:       item.Title,
				EstimateMin: item.EstimateMin,
				Done:        item.Done,
				Status:      model.StatusTodo,
				OrderIndex:  item.OrderIndex,
				CreatedAt:   now,
			}
			if st.EstimateMin < 5 {
				st.EstimateMin = DefaultSubtaskEstimateMin
			}
			if err := svc.tasks.SaveSubtask(ctx, st); err != nil {
				return nil, err
			}
			result = append(result, st)
			continue
		}

		existing, err := svc.tasks.GetSubtask(ctx, item.SubtaskID, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.TaskID != taskID {
			return nil, ErrNotFound
		}
		if item.Title != "" {
			existing.Title = item.Title
		}
		if item.EstimateMin >= 5 {
			existing.EstimateMin = item.EstimateMin
		}
		existing.Done = item.Done
		existing.OrderIndex = item.OrderIndex
		if err := svc.tasks.SaveSubtask(ctx, existing); err != nil {
			return nil, err
		}
		result = append(result, existing)
	}

	return result, nil
}

// StartSubtask mirrors StartTask for one child row.
func (svc *TaskService) StartSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, error) {
	st, err := svc.ownedSubtask(ctx, subtaskID, userID)
	if err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	st.Status = model.StatusDoing
	st.StartedAt = &now

	if err := svc.tasks.SaveSubtask(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// PauseSubtask closes the running interval and clears the clock.
func (svc *TaskService) PauseSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, int64, error) {
	st, err := svc.ownedSubtask(ctx, subtaskID, userID)
	if err != nil {
		return nil, 0, err
	}

	now := svc.clock.Now()
	seconds := svc.closeSubtaskInterval(ctx, userID, st, now)

	st.Status = model.StatusPaused
	st.StartedAt = nil

	if err := svc.tasks.SaveSubtask(ctx, st); err != nil {
		return nil, 0, err
	}
	return st, seconds, nil
}

// ResumeSubtask restarts the clock without emitting an interval.
func (svc *TaskService) ResumeSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, error) {
	st, err := svc.ownedSubtask(ctx, subtaskID, userID)
	if err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	st.Status = model.StatusDoing
	if st.StartedAt == nil {
		st.StartedAt = &now
	}

	if err := svc.tasks.SaveSubtask(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// CompleteSubtask closes the running interval when doing, then marks done.
func (svc *TaskService) CompleteSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, error) {
	st, err := svc.ownedSubtask(ctx, subtaskID, userID)
	if err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	if st.Status == model.StatusDoing {
		svc.closeSubtaskInterval(ctx, userID, st, now)
	}

	st.Status = model.StatusDone
	st.Done = true
	st.CompletedAt = &now
	st.StartedAt = nil

	if err := svc.tasks.SaveSubtask(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (svc *TaskService) ownedTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	task, err := svc.tasks.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (svc *TaskService) ownedSubtask(ctx context.Context, subtaskID, userID string) (*model.Subtask, error) {
	st, err := svc.tasks.GetSubtask(ctx, subtaskID, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

// closeInterval appends a focus log from the task's started_at to now.
// Returns 0 when no clock was running.
func (svc *TaskService) closeInterval(ctx context.Context, task *model.Task, now time.Time) int64 {
	if task.StartedAt == nil {
		return 0
	}
	seconds := int64(now.Sub(*task.StartedAt) / time.Second)
	entry := &model.FocusLog{
		LogID:     uuid.New().String(),
		UserID:    task.UserID,
		TaskID:    task.TaskID,
		StartedAt: *task.StartedAt,
		StoppedAt: now,
		Seconds:   seconds,
		CreatedAt: now,
	}
	if err := svc.logs.Insert(ctx, entry); err != nil {
		// The status transition still proceeds; the interval is lost.
		utils.TrackError("focus_log", "insert_failed")
		return 0
	}
	utils.TrackFocusLog()
	return seconds
}

func (svc *TaskService) closeSubtaskInterval(ctx context.Context, userID string, st *model.Subtask, now time.Time) int64 {
	if st.StartedAt == nil {
		return 0
	}
	seconds := int64(now.Sub(*st.StartedAt) / time.Second)
	entry := &model.FocusLog{
		LogID:     uuid.New().String(),
		UserID:    userID,
		SubtaskID: st.SubtaskID,
		StartedAt: *st.StartedAt,
		StoppedAt: now,
		Seconds:   seconds,
		CreatedAt: now,
	}
	if err := svc.logs.Insert(ctx, entry); err != nil {
		utils.TrackError("focus_log", "insert_failed")
		return 0
	}
	utils.TrackFocusLog()
	return seconds
}
