package metrics

import (
	"time"

	"execmode/internal/types"
)

// Tier grades today's execution by hours logged. Before midday with nothing
// logged the day is still open, so the grade is withheld rather than
// reported as critical.
func Tier(todayHours float64, now time.Time) types.ExecutionTier {
	if todayHours == 0 && now.Hour() < 12 {
		return types.TierAwaiting
	}

	switch {
	case todayHours == 0:
		return types.TierCritical
	case todayHours < QualifyingHours:
		return types.TierBelowStandard
	case todayHours < 4:
		return types.TierOnTarget
	case todayHours < 5:
		return types.TierElite
	default:
		return types.TierSavage
	}
}

// Phase buckets the local hour into the coarse time-of-day phases driving
// the motivational banner.
func Phase(now time.Time) types.DayPhase {
	hour := now.Hour()
	switch {
	case hour < 12:
		return types.PhaseMorning
	case hour >= 23:
		return types.PhaseClosing
	default:
		return types.PhaseMidday
	}
}

// PhaseMessage returns the banner text for a day phase.
func PhaseMessage(phase types.DayPhase) string {
	switch phase {
	case types.PhaseMorning:
		return "Win the morning. Win the day."
	case types.PhaseClosing:
		return "Day closing. Evaluate your execution."
	default:
		return "Execute relentlessly."
	}
}
