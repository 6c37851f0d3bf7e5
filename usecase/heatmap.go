package usecase

import (
	"context"
	"math"
	"time"

	"main/utils"
)

const (
	DaysPerWeek    = 7
	SlotsPerDay    = 48
	BucketsPerWeek = DaysPerWeek * SlotsPerDay
)

// WeekGrid holds seconds of recorded focus per half-hour bucket of one
// calendar week. Rows are days (Monday=0), columns half-hour slots
// (slot = hour*2, +1 past the half hour).
type WeekGrid [DaysPerWeek][SlotsPerDay]int64

// MaxSec returns the busiest bucket's seconds, 0 for an empty grid.
func (g *WeekGrid) MaxSec() int64 {
	var maxSec int64
	for day := 0; day < DaysPerWeek; day++ {
		for slot := 0; slot < SlotsPerDay; slot++ {
			if g[day][slot] > maxSec {
				maxSec = g[day][slot]
			}
		}
	}
	return maxSec
}

// BucketLevel is one quantized cell of the heatmap.
type BucketLevel struct {
	Day   int `json:"day"`
	Slot  int `json:"slot"`
	Level int `json:"level"`
}

type HeatmapService struct {
	logs     FocusLogStore
	clock    utils.Clock
	location *time.Location
}

func NewHeatmapService(logs FocusLogStore, clock utils.Clock, location *time.Location) *HeatmapService {
	if location == nil {
		location = time.Local
	}
	return &HeatmapService{
		logs:     logs,
		clock:    clock,
		location: location,
	}
}

// WeekBins distributes the user's focus logs overlapping the week starting at
// weekStart (a local Monday) into the half-hour grid. Intervals are clipped
// to the week window and split at every half-hour boundary they cross, so no
// seconds are created or lost.
func (s *HeatmapService) WeekBins(ctx context.Context, userID string, weekStart time.Time) (WeekGrid, error) {
	var grid WeekGrid

	weekStart = s.midnight(weekStart)
	weekEnd := weekStart.AddDate(0, 0, DaysPerWeek)

	logs, err := s.logs.Overlapping(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return grid, err
	}

	for _, l := range logs {
		start := l.StartedAt.In(s.location)
		if start.Before(weekStart) {
			start = weekStart
		}
		stop := l.StoppedAt.In(s.location)
		if stop.After(weekEnd) {
			stop = weekEnd
		}

		for pos := start; pos.Before(stop); {
			segEnd := nextHalfHour(pos)
			if stop.Before(segEnd) {
				segEnd = stop
			}
			day, slot := bucketOf(pos)
			grid[day][slot] += int64(segEnd.Sub(pos) / time.Second)
			pos = segEnd
		}
	}

	return grid, nil
}

// WeekAvgBins averages the most recent windowWeeks calendar weeks. Each
// bucket is averaged only over the weeks where it saw activity, so idle weeks
// do not drag a habitual slot toward zero; a bucket idle across the whole
// window averages to 0.
func (s *HeatmapService) WeekAvgBins(ctx context.Context, userID string, windowWeeks int) (WeekGrid, error) {
	var sum, count, avg WeekGrid

	thisMonday := s.WeekStartOf(s.clock.Now())

	for k := 0; k < windowWeeks; k++ {
		weekStart := thisMonday.AddDate(0, 0, -DaysPerWeek*k)
		grid, err := s.WeekBins(ctx, userID, weekStart)
		if err != nil {
			return avg, err
		}
		for day := 0; day < DaysPerWeek; day++ {
			for slot := 0; slot < SlotsPerDay; slot++ {
				if grid[day][slot] > 0 {
					sum[day][slot] += grid[day][slot]
					count[day][slot]++
				}
			}
		}
	}

	for day := 0; day < DaysPerWeek; day++ {
		for slot := 0; slot < SlotsPerDay; slot++ {
			if count[day][slot] > 0 {
				avg[day][slot] = int64(math.Round(float64(sum[day][slot]) / float64(count[day][slot])))
			}
		}
	}

	return avg, nil
}

// WeekStartOf returns the local Monday midnight of the week containing t.
func (s *HeatmapService) WeekStartOf(t time.Time) time.Time {
	t = t.In(s.location)
	weekdayIdx := (int(t.Weekday()) + 6) % 7 // Monday=0
	return s.midnight(t).AddDate(0, 0, -weekdayIdx)
}

func (s *HeatmapService) midnight(t time.Time) time.Time {
	t = t.In(s.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
}

// nextHalfHour returns the first half-hour boundary strictly after t.
func nextHalfHour(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	floor := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
	return floor.Add(30 * time.Minute)
}

// bucketOf addresses the grid cell containing instant t.
func bucketOf(t time.Time) (day, slot int) {
	day = (int(t.Weekday()) + 6) % 7
	slot = t.Hour() * 2
	if t.Minute() >= 30 {
		slot++
	}
	return day, slot
}

// Quantize converts a seconds grid into 6-level relative intensities. The
// busiest bucket always lands on level 5; an all-zero grid stays all zero.
func Quantize(grid WeekGrid) ([]BucketLevel, int64) {
	maxSec := grid.MaxSec()

	levels := make([]BucketLevel, 0, BucketsPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		for slot := 0; slot < SlotsPerDay; slot++ {
			levels = append(levels, BucketLevel{
				Day:   day,
				Slot:  slot,
				Level: quantizeLevel(grid[day][slot], maxSec),
			})
		}
	}
	return levels, maxSec
}

func quantizeLevel(sec, maxSec int64) int {
	if maxSec == 0 || sec == 0 {
		return 0
	}
	r := float64(sec) / float64(maxSec)
	switch {
	case r <= 0.2:
		return 1
	case r <= 0.4:
		return 2
	case r <= 0.6:
		return 3
	case r <= 0.8:
		return 4
	default:
		return 5
	}
}
