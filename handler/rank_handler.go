package handler

import (
	"errors"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type RankHandler struct {
	service *usecase.RankingService
}

func NewRankHandler(service *usecase.RankingService) *RankHandler {
	return &RankHandler{service: service}
}

// GetRankedTasks returns the user's tasks in strategy order. An explicit
// ?strategy= overrides the diagnosed type and counts as a manual sort.
func (h *RankHandler) GetRankedTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	requested := model.Strategy(c.Query("strategy"))
	strategy, mode, err := h.service.ResolveStrategy(c.Request.Context(), userID.(string), requested)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidStrategy) {
			utils.BadRequest(c, "strategy must be planner, sprinter or flow")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	// An explicit ?mode= wins over the resolved one, for clients that sort
	// manually with the diagnosed strategy.
	if m := c.Query("mode"); m == "auto" || m == "manual" {
		mode = m
	}

	device := utils.DeviceLabel(c.GetHeader("User-Agent"))

	ranked, err := h.service.Rank(c.Request.Context(), userID.(string), strategy, mode, device)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStrategy):
			utils.BadRequest(c, "strategy must be planner, sprinter or flow")
		case errors.Is(err, usecase.ErrMissingDeadline):
			// Deadlines are required by the data model; reaching scoring
			// without one is a server-side integrity failure.
			utils.InternalError(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.Success(c, dto.ToRankResponse(strategy, mode, ranked))
}
