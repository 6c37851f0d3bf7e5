package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

func newRankingFixture(now time.Time) (*RankingService, *fakeTaskStore, *fakeProfileStore, *fakeSortLogSink) {
	tasks := newFakeTaskStore()
	profiles := newFakeProfileStore()
	audit := &fakeSortLogSink{}
	svc := NewRankingService(tasks, profiles, audit, utils.FixedClock{Instant: now})
	return svc, tasks, profiles, audit
}

func addTask(store *fakeTaskStore, id string, deadline time.Time, estimate, importance int, status model.Status) *model.Task {
	t := &model.Task{
		TaskID:      id,
		UserID:      "user-1",
		Title:       id,
		Deadline:    deadline,
		EstimateMin: estimate,
		Importance:  importance,
		Status:      status,
		CreatedAt:   deadline.AddDate(0, 0, -10),
	}
	store.tasks[id] = t
	return t
}

func TestRankDoneTasksSortLast(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)

	addTask(tasks, "far", now.AddDate(0, 0, 13), 120, 0, model.StatusTodo)
	done := addTask(tasks, "done", now.Add(time.Hour), 10, 3, model.StatusDone)
	completed := now.Add(-time.Hour)
	done.CompletedAt = &completed
	addTask(tasks, "near", now.Add(2*time.Hour), 10, 3, model.StatusTodo)

	ranked, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", "")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("got %d rows, want 3", len(ranked))
	}
	if ranked[len(ranked)-1].Task.TaskID != "done" {
		t.Errorf("done task not last: order %v", rankedIDs(ranked))
	}
}

func TestRankOverdueTasksSortFirst(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)

	// High-scoring fresh task vs low-scoring overdue one.
	addTask(tasks, "urgent", now.Add(time.Hour), 10, 3, model.StatusTodo)
	addTask(tasks, "overdue", now.AddDate(0, 0, -1), 480, 0, model.StatusTodo)

	ranked, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", "")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if ranked[0].Task.TaskID != "overdue" {
		t.Errorf("overdue task not first: order %v", rankedIDs(ranked))
	}
}

func TestRankIsStable(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)

	// Identical scoring inputs, distinguishable only by ID.
	for _, id := range []string{"a", "b", "c", "d"} {
		task := addTask(tasks, id, now.AddDate(0, 0, 5), 30, 1, model.StatusTodo)
		task.CreatedAt = now.AddDate(0, 0, -10)
	}

	first, err := svc.Rank(context.Background(), "user-1", model.StrategySprinter, "manual", "")
	if err != nil {
		t.Fatalf("first Rank failed: %v", err)
	}
	second, err := svc.Rank(context.Background(), "user-1", model.StrategySprinter, "manual", "")
	if err != nil {
		t.Fatalf("second Rank failed: %v", err)
	}

	for i := range first {
		if first[i].Task.TaskID != second[i].Task.TaskID {
			t.Fatalf("order changed between runs: %v vs %v", rankedIDs(first), rankedIDs(second))
		}
	}
}

func TestRankArchivesOldDoneTasks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)

	addTask(tasks, "open", now.AddDate(0, 0, 3), 30, 1, model.StatusTodo)

	recent := addTask(tasks, "recent-done", now.AddDate(0, 0, -1), 30, 1, model.StatusDone)
	recentCompleted := now.AddDate(0, 0, -5)
	recent.CompletedAt = &recentCompleted

	old := addTask(tasks, "old-done", now.AddDate(0, 0, -40), 30, 1, model.StatusDone)
	oldCompleted := now.AddDate(0, 0, -31)
	old.CompletedAt = &oldCompleted

	ranked, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", "")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	for _, r := range ranked {
		if r.Task.TaskID == "old-done" {
			t.Errorf("archived task present in output: %v", rankedIDs(ranked))
		}
	}
	if len(ranked) != 2 {
		t.Errorf("got %d rows, want 2", len(ranked))
	}
}

func TestRankReconcilesParentEstimate(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)

	parent := addTask(tasks, "parent", now.AddDate(0, 0, 2), 30, 1, model.StatusTodo)
	tasks.subtasks["st-1"] = &model.Subtask{SubtaskID: "st-1", TaskID: "parent", Title: "a", EstimateMin: 20}
	tasks.subtasks["st-2"] = &model.Subtask{SubtaskID: "st-2", TaskID: "parent", Title: "b", EstimateMin: 25}

	ranked, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", "")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if parent.EstimateMin != 45 {
		t.Errorf("parent estimate = %d, want 45", parent.EstimateMin)
	}
	if tasks.estimateWrites["parent"] != 1 {
		t.Errorf("estimate write count = %d, want 1", tasks.estimateWrites["parent"])
	}
	if ranked[0].Features.Penalty >= 0 {
		t.Errorf("penalty %v not derived from reconciled estimate", ranked[0].Features.Penalty)
	}
}

func TestRankSurvivesEstimateWriteFailure(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)
	tasks.failEstimate = true

	addTask(tasks, "parent", now.AddDate(0, 0, 2), 30, 1, model.StatusTodo)
	tasks.subtasks["st-1"] = &model.Subtask{SubtaskID: "st-1", TaskID: "parent", Title: "a", EstimateMin: 50}

	ranked, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", "")
	if err != nil {
		t.Fatalf("Rank failed despite best-effort write: %v", err)
	}
	// In-memory value still reflects the subtask sum for this call.
	if ranked[0].Task.EstimateMin != 50 {
		t.Errorf("in-memory estimate = %d, want 50", ranked[0].Task.EstimateMin)
	}
}

func TestRankInvalidStrategy(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _, _ := newRankingFixture(now)

	if _, err := svc.Rank(context.Background(), "user-1", "hustler", "manual", ""); err != ErrInvalidStrategy {
		t.Errorf("Rank error = %v, want ErrInvalidStrategy", err)
	}
}

func TestRankMissingDeadline(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, _ := newRankingFixture(now)

	task := addTask(tasks, "broken", now, 30, 1, model.StatusTodo)
	task.Deadline = time.Time{}

	if _, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", ""); err != ErrMissingDeadline {
		t.Errorf("Rank error = %v, want ErrMissingDeadline", err)
	}
}

func TestRankRecordsAudit(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, audit := newRankingFixture(now)

	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		addTask(tasks, id, now.AddDate(0, 0, i+1), 30, 1, model.StatusTodo)
	}

	if _, err := svc.Rank(context.Background(), "user-1", model.StrategyFlow, "auto", "Chrome on macOS (Desktop)"); err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Type != model.StrategyFlow || entry.Mode != "auto" {
		t.Errorf("audit entry = %+v, want flow/auto", entry)
	}
	if entry.ItemCount != 7 {
		t.Errorf("audit item count = %d, want 7", entry.ItemCount)
	}
	if len(entry.TopIDs) != 5 {
		t.Errorf("audit top IDs = %v, want 5 entries", entry.TopIDs)
	}
	if entry.Device != "Chrome on macOS (Desktop)" {
		t.Errorf("audit device = %q", entry.Device)
	}
}

func TestRankSurvivesAuditFailure(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, tasks, _, audit := newRankingFixture(now)
	audit.fail = true

	addTask(tasks, "a", now.AddDate(0, 0, 1), 30, 1, model.StatusTodo)

	ranked, err := svc.Rank(context.Background(), "user-1", model.StrategyPlanner, "manual", "")
	if err != nil {
		t.Fatalf("Rank failed on audit error: %v", err)
	}
	if len(ranked) != 1 {
		t.Errorf("got %d rows, want 1", len(ranked))
	}
}

func TestResolveStrategy(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	t.Run("explicit strategy is manual", func(t *testing.T) {
		svc, _, _, _ := newRankingFixture(now)
		strategy, mode, err := svc.ResolveStrategy(context.Background(), "user-1", model.StrategySprinter)
		if err != nil {
			t.Fatalf("ResolveStrategy failed: %v", err)
		}
		if strategy != model.StrategySprinter || mode != "manual" {
			t.Errorf("got %v/%v, want sprinter/manual", strategy, mode)
		}
	})

	t.Run("explicit invalid strategy", func(t *testing.T) {
		svc, _, _, _ := newRankingFixture(now)
		if _, _, err := svc.ResolveStrategy(context.Background(), "user-1", "hustler"); err != ErrInvalidStrategy {
			t.Errorf("error = %v, want ErrInvalidStrategy", err)
		}
	})

	t.Run("no diagnosis defaults to planner", func(t *testing.T) {
		svc, _, _, _ := newRankingFixture(now)
		strategy, mode, err := svc.ResolveStrategy(context.Background(), "user-1", "")
		if err != nil {
			t.Fatalf("ResolveStrategy failed: %v", err)
		}
		if strategy != model.StrategyPlanner || mode != "manual" {
			t.Errorf("got %v/%v, want planner/manual", strategy, mode)
		}
	})

	t.Run("diagnosed type with auto-sort", func(t *testing.T) {
		svc, _, profiles, _ := newRankingFixture(now)
		profiles.profiles["user-1"] = &model.UserProfile{
			UserID:           "user-1",
			MainType:         model.StrategyFlow,
			AutoSort:         true,
			ArchiveAfterDays: 30,
		}
		strategy, mode, err := svc.ResolveStrategy(context.Background(), "user-1", "")
		if err != nil {
			t.Fatalf("ResolveStrategy failed: %v", err)
		}
		if strategy != model.StrategyFlow || mode != "auto" {
			t.Errorf("got %v/%v, want flow/auto", strategy, mode)
		}
	})
}

func rankedIDs(ranked []RankedTask) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Task.TaskID
	}
	return ids
}
