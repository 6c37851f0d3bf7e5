package dto

import "main/model"

// UpdateProfileRequest patches triage settings; absent fields stay unchanged.
type UpdateProfileRequest struct {
	AutoSort         *bool                  `json:"auto_sort,omitempty"`
	ArchiveAfterDays *int                   `json:"archive_after_days,omitempty"`
	Settings         map[string]interface{} `json:"settings,omitempty"`
}

type DiagnosisRequest struct {
	Answers []model.DiagnosisAnswer `json:"answers" binding:"required,min=1,max=7,dive"`
}

type DiagnosisResponse struct {
	MainType model.Strategy `json:"main_type"`
	SubType  string         `json:"sub_type,omitempty"`
}
