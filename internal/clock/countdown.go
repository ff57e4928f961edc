// Package clock holds the pure countdown and calendar-progress calculations
// behind the reverse and forward life clocks. Everything here is a function
// of (goal configuration, now); the 1-second UI tick simply recomputes.
package clock

import (
	"time"

	"execmode/internal/types"
)

const day = 24 * time.Hour

// TimeRemaining decomposes the time left until target into days, hours,
// minutes and seconds by chained modulo. A target in the past reports all
// zeros. No calendar-aware month or year logic is applied.
func TimeRemaining(target, now time.Time) types.TimeRemaining {
	diff := target.Sub(now)
	if diff < 0 {
		diff = 0
	}

	return types.TimeRemaining{
		Days:    int(diff / day),
		Hours:   int((diff % day) / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
		Seconds: int((diff % time.Minute) / time.Second),
	}
}

// PercentUsed reports how much of the goal span has elapsed, floored and
// clamped to [0, 100]. A non-positive span is defined as 0 rather than a
// division error.
func PercentUsed(start, target, now time.Time) int {
	totalSpan := target.Sub(start)
	if totalSpan <= 0 {
		return 0
	}

	elapsed := now.Sub(start)
	percent := int(float64(elapsed) / float64(totalSpan) * 100)
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Progress summarizes the goal span in whole days for the countdown footer.
func Progress(goal types.GoalConfig, now time.Time) types.GoalProgress {
	totalDays := int(goal.TargetDate.Sub(goal.StartDate) / day)
	daysElapsed := int(now.Sub(goal.StartDate) / day)

	daysRemaining := int(goal.TargetDate.Sub(now) / day)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return types.GoalProgress{
		TotalDays:     totalDays,
		DaysElapsed:   daysElapsed,
		DaysRemaining: daysRemaining,
		PercentUsed:   PercentUsed(goal.StartDate, goal.TargetDate, now),
	}
}

// IsLeapYear applies the Gregorian rule: divisible by 4, except centuries
// unless divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DayOfYearProgress is the forward clock read-out for the calendar year of
// now.
func DayOfYearProgress(now time.Time) types.YearProgress {
	totalDays := 365
	if IsLeapYear(now.Year()) {
		totalDays = 366
	}

	dayOfYear := now.YearDay()
	return types.YearProgress{
		DayOfYear:       dayOfYear,
		TotalDaysInYear: totalDays,
		PercentComplete: int(float64(dayOfYear) / float64(totalDays) * 100),
	}
}
