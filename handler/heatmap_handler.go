package handler

import (
	"log"
	"strconv"
	"time"

	"main/dto"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const DefaultAverageWindowWeeks = 4

type HeatmapHandler struct {
	service *usecase.HeatmapService
	cache   *services.HeatmapCache
}

// NewHeatmapHandler wires the heatmap computation with an optional Redis
// cache; cache may be nil.
func NewHeatmapHandler(service *usecase.HeatmapService, cache *services.HeatmapCache) *HeatmapHandler {
	return &HeatmapHandler{service: service, cache: cache}
}

// GetWeekHeatmap returns the quantized grid of one calendar week. ?week_start=
// takes a YYYY-MM-DD Monday; absent, the current week is used.
func (h *HeatmapHandler) GetWeekHeatmap(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var weekStart time.Time
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.BadRequest(c, "week_start must be YYYY-MM-DD")
			return
		}
		weekStart = h.service.WeekStartOf(parsed)
	} else {
		weekStart = h.service.WeekStartOf(time.Now())
	}

	ctx := c.Request.Context()
	var cached dto.HeatmapResponse
	if found, err := h.cache.GetWeek(ctx, userID.(string), weekStart, &cached); err == nil && found {
		utils.TrackHeatmapRequest("week", "hit")
		utils.Success(c, &cached)
		return
	}

	grid, err := h.service.WeekBins(ctx, userID.(string), weekStart)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	resp := dto.ToHeatmapResponse(grid)
	if err := h.cache.SetWeek(ctx, userID.(string), weekStart, resp); err != nil {
		log.Printf("Failed to cache week heatmap: %v", err)
	}
	utils.TrackHeatmapRequest("week", "miss")
	utils.Success(c, resp)
}

// GetAverageHeatmap returns the multi-week average grid. ?mode=week averages
// the last ?window= weeks (default 4); ?mode=month multiplies the window by 4.
func (h *HeatmapHandler) GetAverageHeatmap(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	mode := c.DefaultQuery("mode", "week")
	if mode != "week" && mode != "month" {
		utils.BadRequest(c, "mode must be week or month")
		return
	}

	window := DefaultAverageWindowWeeks
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.BadRequest(c, "window must be a positive integer")
			return
		}
		window = parsed
	}

	weeks := window
	if mode == "month" {
		weeks = window * 4
	}

	ctx := c.Request.Context()
	var cached dto.HeatmapResponse
	if found, err := h.cache.GetAverage(ctx, userID.(string), mode, window, &cached); err == nil && found {
		utils.TrackHeatmapRequest("average", "hit")
		utils.Success(c, &cached)
		return
	}

	grid, err := h.service.WeekAvgBins(ctx, userID.(string), weeks)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	resp := dto.ToHeatmapResponse(grid)
	if err := h.cache.SetAverage(ctx, userID.(string), mode, window, resp); err != nil {
		log.Printf("Failed to cache average heatmap: %v", err)
	}
	utils.TrackHeatmapRequest("average", "miss")
	utils.Success(c, resp)
}
