package handler

import (
	"errors"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	service *usecase.TaskService
}

func NewTaskHandler(service *usecase.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	task.UserID = userID.(string)

	if err := h.service.CreateTask(c.Request.Context(), &task); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, dto.ToTaskResponse(&task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	patch := usecase.TaskPatch{
		Title:       req.Title,
		Deadline:    req.Deadline,
		EstimateMin: req.EstimateMin,
		Tags:        req.Tags,
		Importance:  req.Importance,
	}

	task, err := h.service.UpdateTask(c.Request.Context(), taskID, userID.(string), patch)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	utils.Success(c, dto.ToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		respondTaskError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) StartTask(c *gin.Context) {
	h.transition(c, func(taskID, userID string) (*model.Task, int64, error) {
		task, err := h.service.StartTask(c.Request.Context(), taskID, userID)
		return task, 0, err
	})
}

func (h *TaskHandler) PauseTask(c *gin.Context) {
	h.transition(c, func(taskID, userID string) (*model.Task, int64, error) {
		return h.service.PauseTask(c.Request.Context(), taskID, userID)
	})
}

func (h *TaskHandler) ResumeTask(c *gin.Context) {
	h.transition(c, func(taskID, userID string) (*model.Task, int64, error) {
		return h.service.ResumeTask(c.Request.Context(), taskID, userID)
	})
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.transition(c, func(taskID, userID string) (*model.Task, int64, error) {
		task, err := h.service.CompleteTask(c.Request.Context(), taskID, userID)
		return task, 0, err
	})
}

// transition runs one lifecycle change and returns the updated task plus the
// seconds of the focus interval the change closed, if any.
func (h *TaskHandler) transition(c *gin.Context, fn func(taskID, userID string) (*model.Task, int64, error)) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	task, seconds, err := fn(taskID, userID.(string))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"task":             dto.ToTaskResponse(task),
		"interval_seconds": seconds,
	})
}

func (h *TaskHandler) GetTaskFocusTotal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	total, err := h.service.TaskFocusTotal(c.Request.Context(), taskID, userID.(string))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	utils.Success(c, gin.H{"task_id": taskID, "total_seconds": total})
}

func (h *TaskHandler) BulkUpsertSubtasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var req dto.BulkSubtasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]*model.Subtask, len(req.Subtasks))
	for i, item := range req.Subtasks {
		items[i] = &model.Subtask{
			SubtaskID:   item.ID,
			Title:       item.Title,
			EstimateMin: item.EstimateMin,
			Done:        item.Done,
			OrderIndex:  item.OrderIndex,
		}
	}

	saved, err := h.service.BulkUpsertSubtasks(c.Request.Context(), taskID, userID.(string), items)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	utils.Success(c, dto.ToSubtaskResponses(saved))
}

func (h *TaskHandler) StartSubtask(c *gin.Context) {
	h.subtaskTransition(c, func(subtaskID, userID string) (*model.Subtask, int64, error) {
		st, err := h.service.StartSubtask(c.Request.Context(), subtaskID, userID)
		return st, 0, err
	})
}

func (h *TaskHandler) PauseSubtask(c *gin.Context) {
	h.subtaskTransition(c, func(subtaskID, userID string) (*model.Subtask, int64, error) {
		return h.service.PauseSubtask(c.Request.Context(), subtaskID, userID)
	})
}

func (h *TaskHandler) ResumeSubtask(c *gin.Context) {
	h.subtaskTransition(c, func(subtaskID, userID string) (*model.Subtask, int64, error) {
		st, err := h.service.ResumeSubtask(c.Request.Context(), subtaskID, userID)
		return st, 0, err
	})
}

func (h *TaskHandler) CompleteSubtask(c *gin.Context) {
	h.subtaskTransition(c, func(subtaskID, userID string) (*model.Subtask, int64, error) {
		st, err := h.service.CompleteSubtask(c.Request.Context(), subtaskID, userID)
		return st, 0, err
	})
}

func (h *TaskHandler) subtaskTransition(c *gin.Context, fn func(subtaskID, userID string) (*model.Subtask, int64, error)) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	subtaskID := c.Param("id")
	if subtaskID == "" {
		utils.BadRequest(c, "Missing subtask ID")
		return
	}

	st, seconds, err := fn(subtaskID, userID.(string))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"subtask":          dto.ToSubtaskResponse(st),
		"interval_seconds": seconds,
	})
}

// respondTaskError maps service errors onto HTTP statuses.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Task not found")
	case errors.Is(err, usecase.ErrInvalidStrategy):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalError(c, err.Error())
	}
}
