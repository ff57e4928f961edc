// Package metrics derives every dashboard read-out from a snapshot of the
// study ledger and a reference clock. All functions are pure: freshness
// comes from recomputing on each call, never from cached state.
package metrics

import (
	"time"

	"execmode/internal/types"
)

// QualifyingHours is the daily study threshold. A day at or above it counts
// toward streaks and renders as high activity.
const QualifyingHours = 3.0

// streakWindowDays bounds the backward walk for streak computation.
const streakWindowDays = 365

// HeatmapDays is the trailing window length of the activity grid.
const HeatmapDays = 84

// ProgressDays is the trailing window length of the daily progress chart.
const ProgressDays = 30

// Ledger indexes accumulated study seconds by local calendar-day key.
type Ledger map[string]int64

// BuildLedger indexes a session list by date. Duplicate dates, which the
// store never produces, still sum safely.
func BuildLedger(sessions []types.StudySession) Ledger {
	ledger := make(Ledger, len(sessions))
	for _, session := range sessions {
		ledger[session.Date] += session.Seconds
	}
	return ledger
}

// HoursOn returns the study hours recorded for a day, 0 for unseen days.
func (l Ledger) HoursOn(day time.Time) float64 {
	return float64(l[types.DayKey(day)]) / 3600.0
}

// TodayHours returns the hours logged on the calendar day of now.
func TodayHours(ledger Ledger, now time.Time) float64 {
	return ledger.HoursOn(now)
}

// CurrentStreak walks backward from today counting consecutive qualifying
// days. A non-qualifying today does not terminate the walk: the streak a
// user built through yesterday survives until today is actually over. Any
// earlier non-qualifying day ends the count.
func CurrentStreak(ledger Ledger, now time.Time) int {
	streak := 0
	for i := 0; i < streakWindowDays; i++ {
		hours := ledger.HoursOn(now.AddDate(0, 0, -i))
		if hours >= QualifyingHours {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// LongestStreak scans the trailing 365-day window for the longest contiguous
// run of qualifying days. Unlike CurrentStreak there is no carve-out for
// today.
func LongestStreak(ledger Ledger, now time.Time) int {
	longest := 0
	run := 0
	for i := 0; i < streakWindowDays; i++ {
		hours := ledger.HoursOn(now.AddDate(0, 0, -i))
		if hours >= QualifyingHours {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// IsStreakBroken reports whether the streak has actually been lost: yesterday
// fell below the threshold and no current streak remains.
func IsStreakBroken(ledger Ledger, now time.Time) bool {
	yesterdayHours := ledger.HoursOn(now.AddDate(0, 0, -1))
	return yesterdayHours < QualifyingHours && CurrentStreak(ledger, now) == 0
}

// CheckMissedDay reports whether yesterday had exactly zero hours logged.
// A partial day (even one below the qualifying threshold) is not missed.
func CheckMissedDay(ledger Ledger, now time.Time) bool {
	return ledger.HoursOn(now.AddDate(0, 0, -1)) == 0
}

// HeatmapSeries returns the trailing 84 calendar days oldest first, zero
// filled for days with no recorded time.
func HeatmapSeries(ledger Ledger, now time.Time) []types.HeatmapDay {
	series := make([]types.HeatmapDay, 0, HeatmapDays)
	for i := HeatmapDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		series = append(series, types.HeatmapDay{
			Date:  types.DayKey(day),
			Hours: ledger.HoursOn(day),
		})
	}
	return series
}

// DailyProgressSeries returns the trailing 30 calendar days oldest first,
// each with a short month/day label for chart axes.
func DailyProgressSeries(ledger Ledger, now time.Time) []types.DailyProgressPoint {
	series := make([]types.DailyProgressPoint, 0, ProgressDays)
	for i := ProgressDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		series = append(series, types.DailyProgressPoint{
			Date:  types.DayKey(day),
			Hours: ledger.HoursOn(day),
			Label: day.Format("Jan 2"),
		})
	}
	return series
}

// ActivityLevel buckets hours for heatmap coloring. The high bucket begins
// exactly at the qualifying threshold so colors and streaks never disagree.
func ActivityLevel(hours float64) types.ActivityLevel {
	switch {
	case hours == 0:
		return types.ActivityNone
	case hours < QualifyingHours:
		return types.ActivityModerate
	default:
		return types.ActivityHigh
	}
}
