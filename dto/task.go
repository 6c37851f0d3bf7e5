package dto

import (
	"main/model"
	"time"
)

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Deadline    time.Time         `json:"deadline"`
	EstimateMin int               `json:"estimate_min"`
	Tags        string            `json:"tags,omitempty"`
	Importance  int               `json:"importance"`
	Status      model.Status      `json:"status"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Subtasks    []SubtaskResponse `json:"subtasks,omitempty"`
}

type SubtaskResponse struct {
	ID          string       `json:"id"`
	TaskID      string       `json:"task_id"`
	Title       string       `json:"title"`
	EstimateMin int          `json:"estimate_min"`
	Done        bool         `json:"done"`
	Status      model.Status `json:"status"`
	StartedAt   *time.Time   `json:"started_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	OrderIndex  int          `json:"order_index"`
}

// Convert model.Task to TaskResponse
func ToTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Deadline:    task.Deadline,
		EstimateMin: task.EstimateMin,
		Tags:        task.Tags,
		Importance:  task.Importance,
		Status:      task.Status,
		StartedAt:   task.StartedAt,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Subtasks:    ToSubtaskResponses(task.Subtasks),
	}
}

// Convert slice of model.Task to slice of TaskResponse
func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}

func ToSubtaskResponse(st *model.Subtask) SubtaskResponse {
	return SubtaskResponse{
		ID:          st.SubtaskID,
		TaskID:      st.TaskID,
		Title:       st.Title,
		EstimateMin: st.EstimateMin,
		Done:        st.Done,
		Status:      st.Status,
		StartedAt:   st.StartedAt,
		CompletedAt: st.CompletedAt,
		OrderIndex:  st.OrderIndex,
	}
}

func ToSubtaskResponses(subtasks []*model.Subtask) []SubtaskResponse {
	if len(subtasks) == 0 {
		return nil
	}
	responses := make([]SubtaskResponse, len(subtasks))
	for i, st := range subtasks {
		responses[i] = ToSubtaskResponse(st)
	}
	return responses
}

// UpdateTaskRequest patches a task; absent fields stay unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	EstimateMin *int       `json:"estimate_min,omitempty"`
	Tags        *string    `json:"tags,omitempty"`
	Importance  *int       `json:"importance,omitempty"`
}

// BulkSubtasksRequest upserts child rows under one task; items without an id
// are created.
type BulkSubtasksRequest struct {
	Subtasks []BulkSubtaskItem `json:"subtasks" binding:"required"`
}

type BulkSubtaskItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	EstimateMin int    `json:"estimate_min"`
	Done        bool   `json:"done"`
	OrderIndex  int    `json:"order_index"`
}
