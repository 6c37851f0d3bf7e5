package usecase

import (
	"context"
	"testing"

	"main/model"
)

func TestGetProfileCreatesDefaults(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore())

	profile, err := svc.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.MainType != "" {
		t.Errorf("main type = %q before diagnosis, want empty", profile.MainType)
	}
	if !profile.AutoSort {
		t.Error("auto-sort not on by default")
	}
	if profile.ArchiveAfterDays != model.DefaultArchiveAfterDays {
		t.Errorf("archive_after_days = %d, want %d", profile.ArchiveAfterDays, model.DefaultArchiveAfterDays)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore())

	off := false
	days := 14
	profile, err := svc.UpdateProfile(context.Background(), "user-1", ProfilePatch{
		AutoSort:         &off,
		ArchiveAfterDays: &days,
		Settings:         map[string]interface{}{"theme": "dark"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if profile.AutoSort || profile.ArchiveAfterDays != 14 {
		t.Errorf("profile = %+v", profile)
	}
	if profile.Settings["theme"] != "dark" {
		t.Errorf("settings = %v", profile.Settings)
	}

	bad := 0
	if _, err := svc.UpdateProfile(context.Background(), "user-1", ProfilePatch{ArchiveAfterDays: &bad}); err == nil {
		t.Error("expected an error for archive_after_days below 1")
	}
}

func answers(choices ...string) []model.DiagnosisAnswer {
	out := make([]model.DiagnosisAnswer, len(choices))
	for i, c := range choices {
		out[i] = model.DiagnosisAnswer{QIndex: i + 1, Choice: c}
	}
	return out
}

func TestSubmitDiagnosis(t *testing.T) {
	tests := []struct {
		name     string
		choices  []string
		wantMain model.Strategy
		wantSub  string
	}{
		{"sprinter majority", []string{"B", "B", "B", "A", "C", "B", "A"}, model.StrategySprinter, ""},
		{"flow majority", []string{"C", "C", "C", "C", "A", "B", "A"}, model.StrategyFlow, ""},
		{"planner wins a two-way tie", []string{"A", "A", "A", "B", "B", "B", "C"}, model.StrategyPlanner, "planner/sprinter"},
		{"three-way tie", []string{"A", "B", "C", "A", "B", "C"}, model.StrategyPlanner, "planner/sprinter/flow"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeProfileStore()
			svc := NewProfileService(store)

			profile, err := svc.SubmitDiagnosis(context.Background(), "user-1", answers(tc.choices...))
			if err != nil {
				t.Fatalf("SubmitDiagnosis failed: %v", err)
			}
			if profile.MainType != tc.wantMain {
				t.Errorf("main type = %v, want %v", profile.MainType, tc.wantMain)
			}
			if profile.SubType != tc.wantSub {
				t.Errorf("sub type = %q, want %q", profile.SubType, tc.wantSub)
			}
			if len(store.answers["user-1"]) != len(tc.choices) {
				t.Errorf("stored %d answers, want %d", len(store.answers["user-1"]), len(tc.choices))
			}
		})
	}
}

func TestSubmitDiagnosisValidation(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore())

	if _, err := svc.SubmitDiagnosis(context.Background(), "user-1", nil); err == nil {
		t.Error("expected an error for empty answers")
	}

	bad := answers("A", "B")
	bad[1].Choice = "D"
	if _, err := svc.SubmitDiagnosis(context.Background(), "user-1", bad); err == nil {
		t.Error("expected an error for choice outside A/B/C")
	}

	outOfRange := answers("A")
	outOfRange[0].QIndex = 8
	if _, err := svc.SubmitDiagnosis(context.Background(), "user-1", outOfRange); err == nil {
		t.Error("expected an error for question index outside 1..7")
	}
}

func TestSubmitDiagnosisReplacesPreviousType(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store)

	if _, err := svc.SubmitDiagnosis(context.Background(), "user-1", answers("A", "A", "A")); err != nil {
		t.Fatalf("first diagnosis failed: %v", err)
	}

	profile, err := svc.SubmitDiagnosis(context.Background(), "user-1", answers("C", "C", "C"))
	if err != nil {
		t.Fatalf("second diagnosis failed: %v", err)
	}
	if profile.MainType != model.StrategyFlow {
		t.Errorf("main type = %v after retake, want flow", profile.MainType)
	}
	if profile.SubType != "" {
		t.Errorf("sub type = %q after clean win, want empty", profile.SubType)
	}
}
