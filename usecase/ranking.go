package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"main/model"
	"main/utils"
)

// RankedTask is one scored row of the ranking output.
type RankedTask struct {
	Task     *model.Task
	Score    float64
	Features Features
}

// IsOverdue reports whether the task's deadline lies behind the reference
// instant used for scoring.
func (r RankedTask) IsOverdue() bool {
	return r.Features.OverdueDays > 0
}

type RankingService struct {
	tasks    TaskStore
	profiles ProfileStore
	audit    SortLogSink
	clock    utils.Clock
}

func NewRankingService(tasks TaskStore, profiles ProfileStore, audit SortLogSink, clock utils.Clock) *RankingService {
	return &RankingService{
		tasks:    tasks,
		profiles: profiles,
		audit:    audit,
		clock:    clock,
	}
}

// ResolveStrategy picks the effective strategy and mode for a ranking call.
// An explicit strategy means a manual sort; an empty one falls back to the
// profile's diagnosed type and counts as auto when auto-sort is on.
func (s *RankingService) ResolveStrategy(ctx context.Context, userID string, requested model.Strategy) (model.Strategy, string, error) {
	if requested != "" {
		if !model.ValidStrategy(requested) {
			return "", "", ErrInvalidStrategy
		}
		return requested, "manual", nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if profile.MainType == "" {
		// No diagnosis taken yet; planner is the neutral default.
		return model.StrategyPlanner, "manual", nil
	}
	mode := "manual"
	if profile.AutoSort {
		mode = "auto"
	}
	return profile.MainType, mode, nil
}

// Rank produces the total order over the user's non-archived tasks for the
// given strategy. Subtasks ride along on their parent rows and are never
// scored or reordered themselves.
func (s *RankingService) Rank(ctx context.Context, userID string, strategy model.Strategy, mode, device string) ([]RankedTask, error) {
	if !model.ValidStrategy(strategy) {
		return nil, ErrInvalidStrategy
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	archiveDays := profile.ArchiveAfterDays
	if archiveDays <= 0 {
		archiveDays = model.DefaultArchiveAfterDays
	}

	tasks, err := s.tasks.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cutoff := now.AddDate(0, 0, -archiveDays)

	ranked := make([]RankedTask, 0, len(tasks))
	for _, t := range tasks {
		// Completed tasks older than the archive cutoff disappear from the
		// output entirely.
		if t.Status == model.StatusDone && t.CompletedAt != nil && t.CompletedAt.Before(cutoff) {
			continue
		}

		s.reconcileEstimate(ctx, t)

		if t.Deadline.IsZero() {
			return nil, ErrMissingDeadline
		}

		f := ExtractFeatures(t, now)
		score, err := Score(strategy, f)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedTask{Task: t, Score: score, Features: f})
	}

	sortRanked(ranked)

	s.recordAudit(ctx, userID, strategy, mode, device, now, ranked)
	utils.TrackRankOperation(string(strategy), mode)

	return ranked, nil
}

// reconcileEstimate re-derives a parent's estimate from its subtasks before
// scoring and writes the synced value back. The write is best-effort: the
// in-memory value is already correct for this call, and the next ranking
// read repairs any miss.
func (s *RankingService) reconcileEstimate(ctx context.Context, t *model.Task) {
	if !t.HasSubtasks() {
		return
	}
	sum := t.SubtaskEstimateSum()
	if sum == t.EstimateMin {
		return
	}
	t.EstimateMin = sum
	if err := s.tasks.UpdateEstimate(ctx, t.TaskID, t.UserID, sum); err != nil {
		log.Printf("Failed to write back reconciled estimate for task %s: %v", t.TaskID, err)
	}
}

// sortRanked applies the display order: done tasks last as one block, then
// overdue before non-overdue, then score descending, with deadline,
// importance, estimate and creation time as successive tie-breaks.
func sortRanked(ranked []RankedTask) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		aDone := a.Task.Status == model.StatusDone
		bDone := b.Task.Status == model.StatusDone
		if aDone != bDone {
			return !aDone
		}

		if !aDone && !bDone {
			if a.IsOverdue() != b.IsOverdue() {
				return a.IsOverdue()
			}
		}

		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Task.Deadline.Equal(b.Task.Deadline) {
			return a.Task.Deadline.Before(b.Task.Deadline)
		}
		if a.Task.Importance != b.Task.Importance {
			return a.Task.Importance > b.Task.Importance
		}
		if a.Task.EstimateMin != b.Task.EstimateMin {
			return a.Task.EstimateMin < b.Task.EstimateMin
		}
		return a.Task.CreatedAt.After(b.Task.CreatedAt)
	})
}

// recordAudit writes the sort log entry. Failures never propagate to the
// ranking caller.
func (s *RankingService) recordAudit(ctx context.Context, userID string, strategy model.Strategy, mode, device string, sortedAt time.Time, ranked []RankedTask) {
	if s.audit == nil {
		return
	}

	topIDs := make([]string, 0, 5)
	for _, r := range ranked {
		if len(topIDs) == 5 {
			break
		}
		topIDs = append(topIDs, r.Task.TaskID)
	}

	entry := &model.SortLog{
		UserID:    userID,
		Type:      strategy,
		Mode:      mode,
		Device:    device,
		SortedAt:  sortedAt,
		ItemCount: len(ranked),
		TopIDs:    topIDs,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		log.Printf("Failed to record sort log for user %s: %v", userID, err)
	}
}
