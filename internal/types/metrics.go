package types

// ActivityLevel buckets a day's study hours for heatmap and progress-chart
// coloring. The high threshold must stay consistent with the streak
// qualification threshold (3 hours).
type ActivityLevel string

const (
	ActivityNone     ActivityLevel = "none"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// ExecutionTier grades today's execution by hours logged.
type ExecutionTier string

const (
	TierAwaiting      ExecutionTier = "AWAITING"
	TierCritical      ExecutionTier = "CRITICAL"
	TierBelowStandard ExecutionTier = "BELOW STANDARD"
	TierOnTarget      ExecutionTier = "ON TARGET"
	TierElite         ExecutionTier = "ELITE"
	TierSavage        ExecutionTier = "SAVAGE"
)

// DayPhase is the coarse time-of-day bucket used for motivational messaging.
type DayPhase string

const (
	PhaseMorning DayPhase = "morning"
	PhaseMidday  DayPhase = "midday"
	PhaseClosing DayPhase = "closing"
)

// HeatmapDay is one cell of the 84-day activity grid.
type HeatmapDay struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// DailyProgressPoint is one bar of the 30-day progress chart. Label is a
// short month/day rendering of Date.
type DailyProgressPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Label string  `json:"label"`
}

// TimeRemaining is the countdown breakdown toward the goal target date.
// All components are non-negative.
type TimeRemaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// GoalProgress summarizes elapsed versus remaining goal time in whole days.
type GoalProgress struct {
	TotalDays     int `json:"totalDays"`
	DaysElapsed   int `json:"daysElapsed"`
	DaysRemaining int `json:"daysRemaining"`
	PercentUsed   int `json:"percentUsed"`
}

// YearProgress is the forward clock read-out.
type YearProgress struct {
	DayOfYear       int `json:"dayOfYear"`
	TotalDaysInYear int `json:"totalDaysInYear"`
	PercentComplete int `json:"percentComplete"`
}

// Alert is a triggered failure-alert condition the presentation layer
// displays verbatim.
type Alert struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DashboardSnapshot is the full pull-based recomputation of every derived
// metric, rebuilt from the ledger on each request.
type DashboardSnapshot struct {
	TodayHours    float64              `json:"todayHours"`
	CurrentStreak int                  `json:"currentStreak"`
	LongestStreak int                  `json:"longestStreak"`
	StreakBroken  bool                 `json:"streakBroken"`
	MissedDay     bool                 `json:"missedDay"`
	Tier          ExecutionTier        `json:"tier"`
	Phase         DayPhase             `json:"phase"`
	Message       string               `json:"message"`
	Heatmap       []HeatmapDay         `json:"heatmap"`
	DailyProgress []DailyProgressPoint `json:"dailyProgress"`
	Remaining     TimeRemaining        `json:"remaining"`
	Goal          GoalProgress         `json:"goal"`
	Year          YearProgress         `json:"year"`
	Alerts        []Alert              `json:"alerts"`
}
