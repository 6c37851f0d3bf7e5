package model

import "time"

type Status string
type Strategy string

const (
	StatusTodo   Status = "todo"
	StatusDoing  Status = "doing"
	StatusPaused Status = "paused"
	StatusDone   Status = "done"

	StrategyPlanner  Strategy = "planner"
	StrategySprinter Strategy = "sprinter"
	StrategyFlow     Strategy = "flow"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusDoing, StatusPaused, StatusDone:
		return true
	}
	return false
}

// ValidStrategy reports whether s is one of the three personality strategies.
func ValidStrategy(s Strategy) bool {
	switch s {
	case StrategyPlanner, StrategySprinter, StrategyFlow:
		return true
	}
	return false
}

type Task struct {
	TaskID      string     `bson:"_id,omitempty" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Title       string     `bson:"title" json:"title" binding:"required"`
	Deadline    time.Time  `bson:"deadline" json:"deadline" binding:"required"`
	EstimateMin int        `bson:"estimate_min" json:"estimate_min" binding:"required,min=5"`
	Tags        string     `bson:"tags,omitempty" json:"tags,omitempty"`
	Importance  int        `bson:"importance" json:"importance" binding:"min=0,max=3"`
	Status      Status     `bson:"status" json:"status"`
	StartedAt   *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	Subtasks    []*Subtask `bson:"-" json:"subtasks,omitempty"`
}

// HasSubtasks reports whether the task carries any child rows.
func (t *Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

// SubtaskEstimateSum returns the summed estimate of the task's subtasks.
// A task with children keeps estimate_min derived from this sum.
func (t *Task) SubtaskEstimateSum() int {
	total := 0
	for _, st := range t.Subtasks {
		total += st.EstimateMin
	}
	return total
}

type Subtask struct {
	SubtaskID   string     `bson:"_id,omitempty" json:"id"`
	TaskID      string     `bson:"task_id" json:"task_id"`
	Title       string     `bson:"title" json:"title" binding:"required"`
	EstimateMin int        `bson:"estimate_min" json:"estimate_min"`
	Done        bool       `bson:"done" json:"done"`
	Status      Status     `bson:"status" json:"status"`
	StartedAt   *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	OrderIndex  int        `bson:"order_index" json:"order_index"` // manual order, never touched by auto sort
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}
