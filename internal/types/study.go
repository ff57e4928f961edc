package types

import "time"

// DayKeyLayout is the canonical local calendar-day key format used for
// ledger dates and daily cache stamps.
const DayKeyLayout = "2006-01-02"

// DayKey returns the local calendar-day key for a point in time.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// StudySession represents the accumulated study time for a single calendar
// day. At most one session exists per distinct date key.
type StudySession struct {
	Date    string `json:"date"`
	Seconds int64  `json:"seconds"`
}

// Hours returns the session duration in hours.
func (s StudySession) Hours() float64 {
	return float64(s.Seconds) / 3600.0
}

// TimerState captures the chronograph timer so a running timer survives an
// application restart. StartTime is epoch milliseconds, nil when stopped.
type TimerState struct {
	IsRunning bool   `json:"isRunning"`
	StartTime *int64 `json:"startTime"`
}

// GoalConfig is the singleton goal driving the countdown displays.
type GoalConfig struct {
	Name       string    `json:"name"`
	TargetDate time.Time `json:"targetDate"`
	StartDate  time.Time `json:"startDate"`
}

// Quote is a daily motivational quote, fetched remotely or served from the
// local fallback list.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}
