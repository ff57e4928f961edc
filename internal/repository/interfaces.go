package repository

import (
	"context"

	"execmode/internal/types"
)

// Keys under which singleton JSON documents live in the app_state table.
const (
	StateKeyGoalConfig   = "goalConfig"
	StateKeyTimerState   = "timerState"
	StateKeyDailyQuote   = "dailyQuote"
	StateKeyLastReminder = "lastReminderAt"
)

// LedgerRepository defines persistence operations for the per-day study
// ledger. Each calendar day holds at most one row of accumulated seconds.
type LedgerRepository interface {
	// AddSeconds adds seconds to the given day's accumulated total, creating
	// the day on first write. Negative values are rejected with a validation
	// error.
	AddSeconds(ctx context.Context, date string, seconds int64) error

	// GetSeconds returns the accumulated seconds for a day, 0 if the day has
	// no recorded time.
	GetSeconds(ctx context.Context, date string) (int64, error)

	// GetAllSessions returns every recorded day ordered by date ascending.
	GetAllSessions(ctx context.Context) ([]types.StudySession, error)

	// ClearSessions removes all recorded study time.
	ClearSessions(ctx context.Context) error
}

// StateRepository defines persistence operations for singleton application
// state documents (goal configuration, timer state, daily caches).
type StateRepository interface {
	GetGoalConfig(ctx context.Context) (*types.GoalConfig, error)
	SaveGoalConfig(ctx context.Context, config *types.GoalConfig) error

	GetTimerState(ctx context.Context) (*types.TimerState, error)
	SaveTimerState(ctx context.Context, state *types.TimerState) error

	// GetStateValue returns the raw JSON document stored under key and
	// whether the key exists.
	GetStateValue(ctx context.Context, key string) (string, bool, error)
	SetStateValue(ctx context.Context, key, value string) error
	DeleteStateValue(ctx context.Context, key string) error
}

// Store aggregates ledger and state persistence with transaction support.
type Store interface {
	LedgerRepository
	StateRepository

	// WithTransaction executes fn within a single database transaction.
	WithTransaction(ctx context.Context, fn func(store Store) error) error
}
