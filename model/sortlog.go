package model

import "time"

// SortLog is the audit record written after each ranking call. It is
// best-effort: a failed write never fails the ranking result.
type SortLog struct {
	LogID     string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Type      Strategy  `bson:"type" json:"type"`
	Mode      string    `bson:"mode" json:"mode"` // "auto" or "manual"
	Device    string    `bson:"device,omitempty" json:"device,omitempty"`
	SortedAt  time.Time `bson:"sorted_at" json:"sorted_at"`
	ItemCount int       `bson:"item_count" json:"item_count"`
	TopIDs    []string  `bson:"top_ids" json:"top_ids"`
}
