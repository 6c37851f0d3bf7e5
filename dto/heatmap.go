package dto

import "main/usecase"

// HeatmapResponse is the quantized 336-bucket grid plus the busiest bucket's
// raw seconds for caller-side interpretation.
type HeatmapResponse struct {
	Levels []usecase.BucketLevel `json:"levels"`
	MaxSec int64                 `json:"max_sec"`
}

func ToHeatmapResponse(grid usecase.WeekGrid) *HeatmapResponse {
	levels, maxSec := usecase.Quantize(grid)
	return &HeatmapResponse{
		Levels: levels,
		MaxSec: maxSec,
	}
}
