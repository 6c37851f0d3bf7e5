package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	service *usecase.SummaryService
}

func NewSummaryHandler(service *usecase.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// GetSummary returns the dashboard focus summary for ?range=day|week|month
// (default day).
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	rangeType := c.DefaultQuery("range", "day")
	switch rangeType {
	case "day", "week", "month":
	default:
		utils.BadRequest(c, "range must be day, week or month")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID.(string), rangeType)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, summary)
}
