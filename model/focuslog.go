package model

import "time"

// FocusLog is one recorded focus interval. Logs are append-only: a row is
// written when a doing task or subtask is paused, resumed or completed, and
// is never modified afterward.
type FocusLog struct {
	LogID     string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TaskID    string    `bson:"task_id,omitempty" json:"task_id,omitempty"`
	SubtaskID string    `bson:"subtask_id,omitempty" json:"subtask_id,omitempty"`
	StartedAt time.Time `bson:"started_at" json:"started_at"`
	StoppedAt time.Time `bson:"stopped_at" json:"stopped_at"`
	Seconds   int64     `bson:"seconds" json:"seconds"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
