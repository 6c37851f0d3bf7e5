package model

const DefaultArchiveAfterDays = 30

// UserProfile holds per-user triage settings. MainType stays empty until the
// diagnosis quiz has been taken at least once.
type UserProfile struct {
	UserID           string                 `bson:"user_id" json:"user_id"`
	MainType         Strategy               `bson:"main_type,omitempty" json:"main_type,omitempty"`
	SubType          string                 `bson:"sub_type,omitempty" json:"sub_type,omitempty"`
	AutoSort         bool                   `bson:"auto_sort" json:"auto_sort"`
	ArchiveAfterDays int                    `bson:"archive_after_days" json:"archive_after_days"`
	Settings         map[string]interface{} `bson:"settings,omitempty" json:"settings,omitempty"`
}

// DiagnosisAnswer is one answer of the seven-question personality quiz.
// Choice A counts toward planner, B toward sprinter, C toward flow.
type DiagnosisAnswer struct {
	UserID string `bson:"user_id" json:"user_id"`
	QIndex int    `bson:"q_index" json:"q_index" binding:"required,min=1,max=7"`
	Choice string `bson:"choice" json:"choice" binding:"required,oneof=A B C"`
}
