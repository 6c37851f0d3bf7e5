package usecase

import (
	"math"
	"time"

	"main/model"
)

// Scoring constants shared with the policy descriptor returned to clients.
const (
	UrgencyWindowDays  = 14
	OverdueBonusPerDay = 0.1
	ShortTaskMaxMin    = 15
	PenaltyScaleMin    = 30.0
)

// StepBonus maps days-until-deadline to the sprinter's one-off approach bonus.
var StepBonus = map[int]float64{
	0: 0.6,
	1: 0.4,
	2: 0.15,
	3: 0.05,
}

// Features is the dimensionless signal bundle extracted from one task at a
// reference instant. Pure data; extraction has no side effects.
type Features struct {
	DeltaDays      int     `json:"delta_days"`
	OverdueDays    int     `json:"overdue_days"`
	Urgency        float64 `json:"urgency"`
	ImportanceNorm float64 `json:"importance_norm"`
	Penalty        float64 `json:"penalty"`
	OverdueBonus   float64 `json:"overdue_bonus"`
	Short          float64 `json:"short"`
	NotStarted     float64 `json:"not_started"`
	Step           float64 `json:"step"`
}

// ExtractFeatures derives the scoring signals for one task at instant now.
func ExtractFeatures(t *model.Task, now time.Time) Features {
	deltaDays := int(math.Floor(t.Deadline.Sub(now).Seconds() / 86400))

	overdueDays := 0
	if deltaDays < 0 {
		overdueDays = -deltaDays
	}

	// Urgency ramps linearly from 1 at the deadline to 0 two weeks out.
	urgency := 1 - float64(max(deltaDays, 0))/UrgencyWindowDays
	urgency = math.Max(0, math.Min(1, urgency))

	f := Features{
		DeltaDays:      deltaDays,
		OverdueDays:    overdueDays,
		Urgency:        urgency,
		ImportanceNorm: float64(t.Importance) / 3.0,
		Penalty:        -math.Log(1 + float64(t.EstimateMin)/PenaltyScaleMin),
		OverdueBonus:   OverdueBonusPerDay * float64(overdueDays),
	}

	if t.EstimateMin <= ShortTaskMaxMin {
		f.Short = 1
	}
	if t.Status == model.StatusTodo && t.StartedAt == nil {
		f.NotStarted = 1
	}
	f.Step = StepBonus[deltaDays]

	return f
}

// Score combines a feature bundle into the strategy's priority score. The
// three strategies are a closed set; anything else is ErrInvalidStrategy.
func Score(strategy model.Strategy, f Features) (float64, error) {
	switch strategy {
	case model.StrategyPlanner:
		return 0.5*f.Urgency + 0.3*f.ImportanceNorm + f.Penalty + f.OverdueBonus, nil
	case model.StrategySprinter:
		return 0.7*f.Urgency + 0.2*f.NotStarted + 0.1*f.ImportanceNorm + f.Step + f.Penalty + f.OverdueBonus, nil
	case model.StrategyFlow:
		return 0.3*f.Short + 0.2*(1-f.ImportanceNorm) + f.Penalty + f.OverdueBonus, nil
	default:
		return 0, ErrInvalidStrategy
	}
}
