package metrics

import (
	"time"

	"execmode/internal/types"
)

// Alert kinds raised by FailureAlerts.
const (
	AlertEveningZero     = "evening-zero"
	AlertMissedYesterday = "missed-yesterday"
)

// FailureAlerts evaluates the failure-alert conditions for the current
// moment. Past 21:00 with nothing logged raises the evening alert; a morning
// following a fully missed day raises the missed-yesterday alert. The
// conditions are mutually exclusive by their hour windows.
func FailureAlerts(todayHours float64, missedYesterday bool, now time.Time) []types.Alert {
	hour := now.Hour()

	if hour >= 21 && todayHours == 0 {
		return []types.Alert{{
			Kind:    AlertEveningZero,
			Message: "9PM Alert: 0 hours logged today. Time is running out.",
		}}
	}

	if hour < 12 && missedYesterday {
		return []types.Alert{{
			Kind:    AlertMissedYesterday,
			Message: "Morning Alert: You missed yesterday. Don't let it happen again.",
		}}
	}

	return nil
}
