package dto

import (
	"main/model"
	"main/usecase"
)

// RankRow is one ordered entry of the ranking output.
type RankRow struct {
	Task        TaskResponse `json:"task"`
	Score       float64      `json:"score"`
	IsOverdue   bool         `json:"is_overdue"`
	HasSubtasks bool         `json:"has_subtasks"`
}

// RankPolicy restates the scoring policy for client display.
type RankPolicy struct {
	UrgencyWindowDays  int             `json:"urgency_window_days"`
	OverdueBonusPerDay float64         `json:"overdue_bonus_per_day"`
	ShortTaskMaxMin    int             `json:"short_task_max_min"`
	StepBonus          map[int]float64 `json:"step_bonus"`
	PenaltyFormula     string          `json:"penalty_formula"`
}

type RankResponse struct {
	Strategy model.Strategy `json:"strategy"`
	Mode     string         `json:"mode"`
	Items    []RankRow      `json:"items"`
	Policy   RankPolicy     `json:"policy"`
}

func ToRankResponse(strategy model.Strategy, mode string, ranked []usecase.RankedTask) RankResponse {
	items := make([]RankRow, len(ranked))
	for i, r := range ranked {
		items[i] = RankRow{
			Task:        ToTaskResponse(r.Task),
			Score:       r.Score,
			IsOverdue:   r.IsOverdue(),
			HasSubtasks: r.Task.HasSubtasks(),
		}
	}
	return RankResponse{
		Strategy: strategy,
		Mode:     mode,
		Items:    items,
		Policy: RankPolicy{
			UrgencyWindowDays:  usecase.UrgencyWindowDays,
			OverdueBonusPerDay: usecase.OverdueBonusPerDay,
			ShortTaskMaxMin:    usecase.ShortTaskMaxMin,
			StepBonus:          usecase.StepBonus,
			PenaltyFormula:     "-ln(1 + estimate_min/30)",
		},
	}
}
