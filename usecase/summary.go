package usecase

import (
	"context"
	"time"

	"main/utils"
)

// DailyFocusTargetSec is the fixed 8-hour ring target shown on the dashboard.
const DailyFocusTargetSec int64 = 28800

// streakLookbackDays bounds the streak scan; nobody keeps a longer streak
// than a year without noticing.
const streakLookbackDays = 366

// FocusSummary is the dashboard bundle: progress ring plus activity streak.
type FocusSummary struct {
	TargetSec  int64 `json:"target_sec"`
	ActualSec  int64 `json:"actual_sec"`
	StreakDays int   `json:"streak_days"`
}

type SummaryService struct {
	logs     FocusLogStore
	clock    utils.Clock
	location *time.Location
}

func NewSummaryService(logs FocusLogStore, clock utils.Clock, location *time.Location) *SummaryService {
	if location == nil {
		location = time.Local
	}
	return &SummaryService{
		logs:     logs,
		clock:    clock,
		location: location,
	}
}

// Summary computes the focus total for the requested range (day, week or
// month; anything else falls back to day) and the consecutive-active-day
// streak ending today.
func (svc *SummaryService) Summary(ctx context.Context, userID, rangeType string) (*FocusSummary, error) {
	now := svc.clock.Now().In(svc.location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, svc.location)

	var rangeStart time.Time
	switch rangeType {
	case "week":
		rangeStart = now.AddDate(0, 0, -7)
	case "month":
		rangeStart = now.AddDate(0, 0, -30)
	default:
		rangeStart = midnight
	}

	lookback := midnight.AddDate(0, 0, -streakLookbackDays)
	fetchFrom := rangeStart
	if lookback.Before(fetchFrom) {
		fetchFrom = lookback
	}

	logs, err := svc.logs.Since(ctx, userID, fetchFrom)
	if err != nil {
		return nil, err
	}

	var total int64
	activeDays := map[string]bool{}
	for _, l := range logs {
		started := l.StartedAt.In(svc.location)
		if !started.Before(rangeStart) {
			total += l.Seconds
		}
		activeDays[started.Format("2006-01-02")] = true
	}

	streak := 0
	for day := midnight; activeDays[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}

	return &FocusSummary{
		TargetSec:  DailyFocusTargetSec,
		ActualSec:  total,
		StreakDays: streak,
	}, nil
}
