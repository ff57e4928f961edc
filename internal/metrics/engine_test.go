package metrics

import (
	"testing"
	"time"

	"execmode/internal/types"
)

// day returns a key for n days before now.
func day(now time.Time, n int) string {
	return types.DayKey(now.AddDate(0, 0, -n))
}

// ledgerWithHours builds a ledger mapping "days ago" to hours logged.
func ledgerWithHours(now time.Time, hoursByDaysAgo map[int]float64) Ledger {
	ledger := make(Ledger)
	for daysAgo, hours := range hoursByDaysAgo {
		ledger[day(now, daysAgo)] = int64(hours * 3600)
	}
	return ledger
}

func TestBuildLedger_SumsDuplicates(t *testing.T) {
	t.Parallel()

	sessions := []types.StudySession{
		{Date: "2026-08-31", Seconds: 1800},
		{Date: "2026-08-31", Seconds: 1800},
		{Date: "2026-08-30", Seconds: 3600},
	}

	ledger := BuildLedger(sessions)
	if ledger["2026-08-31"] != 3600 {
		t.Errorf("Expected duplicate dates to sum to 3600, got %d", ledger["2026-08-31"])
	}
	if ledger["2026-08-30"] != 3600 {
		t.Errorf("Expected 3600 seconds, got %d", ledger["2026-08-30"])
	}
}

func TestTodayHours(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ledger   Ledger
		expected float64
	}{
		{
			name:     "empty ledger reports zero",
			ledger:   Ledger{},
			expected: 0,
		},
		{
			name:     "today's seconds convert to hours",
			ledger:   ledgerWithHours(now, map[int]float64{0: 2.5}),
			expected: 2.5,
		},
		{
			name:     "other days do not count",
			ledger:   ledgerWithHours(now, map[int]float64{1: 4}),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TodayHours(tt.ledger, now); got != tt.expected {
				t.Errorf("Expected %v hours, got %v", tt.expected, got)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hours    map[int]float64
		expected int
	}{
		{
			name:     "empty ledger",
			hours:    nil,
			expected: 0,
		},
		{
			name:     "today qualifying counts",
			hours:    map[int]float64{0: 3},
			expected: 1,
		},
		{
			name:     "exactly 3 hours qualifies",
			hours:    map[int]float64{0: 3.0, 1: 3.0},
			expected: 2,
		},
		{
			name:     "just below threshold does not qualify",
			hours:    map[int]float64{0: 2.999, 1: 4},
			expected: 1,
		},
		{
			name:     "zero today does not break run ending yesterday",
			hours:    map[int]float64{1: 4, 2: 4, 3: 5},
			expected: 3,
		},
		{
			name:     "gap at yesterday ends the streak",
			hours:    map[int]float64{0: 4, 2: 4, 3: 4},
			expected: 1,
		},
		{
			name:     "gap two days back ends the run",
			hours:    map[int]float64{0: 4, 1: 4, 3: 4, 4: 4},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ledger := ledgerWithHours(now, tt.hours)
			if got := CurrentStreak(ledger, now); got != tt.expected {
				t.Errorf("Expected streak %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hours    map[int]float64
		expected int
	}{
		{
			name:     "empty ledger",
			hours:    nil,
			expected: 0,
		},
		{
			name:     "longest run is in the past",
			hours:    map[int]float64{0: 4, 5: 4, 6: 4, 7: 4},
			expected: 3,
		},
		{
			name:     "no carve-out for a zero today",
			hours:    map[int]float64{1: 4, 2: 4},
			expected: 2,
		},
		{
			name:     "sub-threshold days reset the run",
			hours:    map[int]float64{0: 4, 1: 2.5, 2: 4, 3: 4},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ledger := ledgerWithHours(now, tt.hours)
			if got := LongestStreak(ledger, now); got != tt.expected {
				t.Errorf("Expected longest streak %d, got %d", tt.expected, got)
			}
		})
	}
}

// Scenario: today=0h, yesterday=4h, day-2=4h, day-3=1h.
func TestStreakScenario_RunEndingYesterday(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	ledger := ledgerWithHours(now, map[int]float64{
		0: 0,
		1: 4,
		2: 4,
		3: 1,
	})

	if got := CurrentStreak(ledger, now); got != 2 {
		t.Errorf("Expected current streak 2, got %d", got)
	}
	if got := LongestStreak(ledger, now); got != 2 {
		t.Errorf("Expected longest streak 2, got %d", got)
	}
	if CheckMissedDay(ledger, now) {
		t.Error("Yesterday had 4 hours, day should not be missed")
	}
	if IsStreakBroken(ledger, now) {
		t.Error("Streak of 2 is alive, should not be broken")
	}
}

func TestIsStreakBroken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hours    map[int]float64
		expected bool
	}{
		{
			name:     "empty ledger is broken",
			hours:    nil,
			expected: true,
		},
		{
			name:     "yesterday qualifying keeps the streak",
			hours:    map[int]float64{1: 3},
			expected: false,
		},
		{
			name:     "today qualifying keeps the streak even after a gap",
			hours:    map[int]float64{0: 4},
			expected: false,
		},
		{
			name:     "partial yesterday with no streak is broken",
			hours:    map[int]float64{1: 1},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ledger := ledgerWithHours(now, tt.hours)
			if got := IsStreakBroken(ledger, now); got != tt.expected {
				t.Errorf("Expected broken=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCheckMissedDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hours    map[int]float64
		expected bool
	}{
		{
			name:     "no session yesterday is missed",
			hours:    map[int]float64{0: 4},
			expected: true,
		},
		{
			name:     "one partial hour is not missed",
			hours:    map[int]float64{1: 1},
			expected: false,
		},
		{
			name:     "qualifying yesterday is not missed",
			hours:    map[int]float64{1: 5},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ledger := ledgerWithHours(now, tt.hours)
			if got := CheckMissedDay(ledger, now); got != tt.expected {
				t.Errorf("Expected missed=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestHeatmapSeries_ExactLengthAndOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	// Empty ledger still yields a full zero-filled window
	series := HeatmapSeries(Ledger{}, now)
	if len(series) != HeatmapDays {
		t.Fatalf("Expected %d heatmap entries, got %d", HeatmapDays, len(series))
	}
	for i, entry := range series {
		if entry.Hours != 0 {
			t.Errorf("Entry %d: expected 0 hours on empty ledger, got %v", i, entry.Hours)
		}
	}

	if series[0].Date != day(now, HeatmapDays-1) {
		t.Errorf("Expected oldest entry first (%s), got %s", day(now, HeatmapDays-1), series[0].Date)
	}
	if series[len(series)-1].Date != day(now, 0) {
		t.Errorf("Expected today last (%s), got %s", day(now, 0), series[len(series)-1].Date)
	}

	// A populated day lands in the right cell
	ledger := ledgerWithHours(now, map[int]float64{5: 2})
	series = HeatmapSeries(ledger, now)
	if got := series[HeatmapDays-6].Hours; got != 2 {
		t.Errorf("Expected 2 hours five days back, got %v", got)
	}
}

func TestDailyProgressSeries_ExactLengthAndLabels(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	series := DailyProgressSeries(Ledger{}, now)
	if len(series) != ProgressDays {
		t.Fatalf("Expected %d progress entries, got %d", ProgressDays, len(series))
	}

	last := series[len(series)-1]
	if last.Date != "2026-08-31" {
		t.Errorf("Expected today last, got %s", last.Date)
	}
	if last.Label != "Aug 31" {
		t.Errorf("Expected label 'Aug 31', got %q", last.Label)
	}

	first := series[0]
	if first.Date != day(now, ProgressDays-1) {
		t.Errorf("Expected oldest entry first (%s), got %s", day(now, ProgressDays-1), first.Date)
	}
	if first.Label != "Aug 2" {
		t.Errorf("Expected label 'Aug 2', got %q", first.Label)
	}
}

func TestActivityLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours    float64
		expected types.ActivityLevel
	}{
		{0, types.ActivityNone},
		{0.1, types.ActivityModerate},
		{2.999, types.ActivityModerate},
		{3.0, types.ActivityHigh},
		{10, types.ActivityHigh},
	}

	for _, tt := range tests {
		if got := ActivityLevel(tt.hours); got != tt.expected {
			t.Errorf("ActivityLevel(%v): expected %s, got %s", tt.hours, tt.expected, got)
		}
	}
}

// The high activity bucket and streak qualification must agree on the
// threshold.
func TestActivityLevel_AgreesWithStreakThreshold(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	for _, hours := range []float64{0, 1, 2.9, 3.0, 3.1, 6} {
		ledger := ledgerWithHours(now, map[int]float64{0: hours})
		qualifies := CurrentStreak(ledger, now) == 1
		isHigh := ActivityLevel(hours) == types.ActivityHigh
		if qualifies != isHigh {
			t.Errorf("hours=%v: streak qualification (%v) and high activity (%v) disagree",
				hours, qualifies, isHigh)
		}
	}
}
