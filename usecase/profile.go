package usecase

import (
	"context"
	"errors"
	"strings"

	"main/model"
)

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetProfile returns the user's profile, creating it with defaults on first
// access.
func (svc *ProfileService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	return svc.profiles.Get(ctx, userID)
}

// ProfilePatch carries the optional profile settings of an update.
type ProfilePatch struct {
	AutoSort         *bool
	ArchiveAfterDays *int
	Settings         map[string]interface{}
}

// UpdateProfile patches the user's triage settings.
func (svc *ProfileService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*model.UserProfile, error) {
	profile, err := svc.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.AutoSort != nil {
		profile.AutoSort = *patch.AutoSort
	}
	if patch.ArchiveAfterDays != nil {
		if *patch.ArchiveAfterDays < 1 {
			return nil, errors.New("archive_after_days must be at least 1")
		}
		profile.ArchiveAfterDays = *patch.ArchiveAfterDays
	}
	if patch.Settings != nil {
		profile.Settings = patch.Settings
	}

	if err := svc.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SubmitDiagnosis replaces the user's quiz answers and re-derives the
// personality type. A counts toward planner, B toward sprinter, C toward
// flow; the max count wins, and a tie is recorded as a joined sub type.
func (svc *ProfileService) SubmitDiagnosis(ctx context.Context, userID string, answers []model.DiagnosisAnswer) (*model.UserProfile, error) {
	if len(answers) == 0 {
		return nil, errors.New("answers are required")
	}
	for i := range answers {
		answers[i].UserID = userID
		if answers[i].QIndex < 1 || answers[i].QIndex > 7 {
			return nil, errors.New("question index must be between 1 and 7")
		}
		switch answers[i].Choice {
		case "A", "B", "C":
		default:
			return nil, errors.New("choice must be A, B or C")
		}
	}

	if err := svc.profiles.ReplaceDiagnosis(ctx, userID, answers); err != nil {
		return nil, err
	}

	counts := map[model.Strategy]int{}
	for _, a := range answers {
		switch a.Choice {
		case "A":
			counts[model.StrategyPlanner]++
		case "B":
			counts[model.StrategySprinter]++
		case "C":
			counts[model.StrategyFlow]++
		}
	}

	// Fixed evaluation order keeps the result deterministic on ties.
	order := []model.Strategy{model.StrategyPlanner, model.StrategySprinter, model.StrategyFlow}
	maxCount := 0
	for _, s := range order {
		if counts[s] > maxCount {
			maxCount = counts[s]
		}
	}

	var winners []string
	for _, s := range order {
		if counts[s] == maxCount {
			winners = append(winners, string(s))
		}
	}

	profile, err := svc.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.MainType = model.Strategy(winners[0])
	profile.SubType = ""
	if len(winners) > 1 {
		profile.SubType = strings.Join(winners, "/")
	}

	if err := svc.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
