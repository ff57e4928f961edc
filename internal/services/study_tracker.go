package services

import (
	"context"
	"sync"
	"time"

	"execmode/internal/events"
	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
	"execmode/internal/repository"
	"execmode/internal/types"
)

// StudyTracker manages the chronograph study timer. The timer itself holds no
// accumulated seconds; elapsed time only reaches the ledger when a session is
// paused or reset. A running session survives restarts through the persisted
// timer state.
type StudyTracker struct {
	store  repository.Store
	bus    *events.Bus
	logger logging.Logger

	mu           sync.Mutex
	running      bool
	sessionStart time.Time

	// now is swappable for tests
	now func() time.Time
}

// NewStudyTracker creates a study tracker with repository and bus dependencies.
func NewStudyTracker(store repository.Store, bus *events.Bus, logger logging.Logger) *StudyTracker {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &StudyTracker{
		store:  store,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// Restore loads the persisted timer state and resumes a session that was
// running when the application last exited. Missing or malformed state
// recovers to a stopped timer rather than failing startup.
func (st *StudyTracker) Restore(ctx context.Context) error {
	state, err := st.store.GetTimerState(ctx)
	if err != nil {
		switch {
		case storeerrors.IsNotFound(err):
			return nil
		case storeerrors.IsCorruption(err):
			st.logger.Warn("Persisted timer state is malformed, recovering to stopped",
				"error", err.Error())
			return st.persistStopped(ctx)
		default:
			return err
		}
	}

	if !state.IsRunning || state.StartTime == nil {
		return nil
	}

	st.mu.Lock()
	st.running = true
	st.sessionStart = time.UnixMilli(*state.StartTime)
	st.mu.Unlock()

	st.logger.Info("Resumed running study session",
		"started_at", st.sessionStart.Format(time.RFC3339))
	return nil
}

// Start begins a study session and persists the running state so the session
// survives a restart. Starting an already running timer is a no-op.
func (st *StudyTracker) Start(ctx context.Context) error {
	st.mu.Lock()
	if st.running {
		st.mu.Unlock()
		return nil
	}
	start := st.now()
	st.running = true
	st.sessionStart = start
	st.mu.Unlock()

	millis := start.UnixMilli()
	if err := st.store.SaveTimerState(ctx, &types.TimerState{IsRunning: true, StartTime: &millis}); err != nil {
		st.mu.Lock()
		st.running = false
		st.mu.Unlock()
		return err
	}

	st.emitTimerChanged()
	return nil
}

// Pause stops the session, credits the elapsed whole seconds to today's
// ledger entry, and persists the stopped state. Pausing a stopped timer is a
// no-op.
func (st *StudyTracker) Pause(ctx context.Context) error {
	return st.stop(ctx)
}

// Reset stops the session and persists the stopped state. A running session
// is credited to the ledger first so no elapsed time is lost.
func (st *StudyTracker) Reset(ctx context.Context) error {
	return st.stop(ctx)
}

func (st *StudyTracker) stop(ctx context.Context) error {
	st.mu.Lock()
	if !st.running {
		st.mu.Unlock()
		return nil
	}
	now := st.now()
	elapsed := int64(now.Sub(st.sessionStart) / time.Second)
	st.running = false
	st.sessionStart = time.Time{}
	st.mu.Unlock()

	if elapsed > 0 {
		if err := st.store.AddSeconds(ctx, types.DayKey(now), elapsed); err != nil {
			return err
		}
		st.bus.Emit(events.TopicLedgerChanged, elapsed)
	}

	if err := st.persistStopped(ctx); err != nil {
		return err
	}

	st.emitTimerChanged()
	return nil
}

// LogTime credits seconds directly to today's ledger entry without touching
// the timer. Negative durations are rejected by the store.
func (st *StudyTracker) LogTime(ctx context.Context, seconds int64) error {
	if err := st.store.AddSeconds(ctx, types.DayKey(st.now()), seconds); err != nil {
		return err
	}
	st.bus.Emit(events.TopicLedgerChanged, seconds)
	return nil
}

// Elapsed returns the whole seconds of the current running session, 0 when
// stopped.
func (st *StudyTracker) Elapsed() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.running {
		return 0
	}
	return int64(st.now().Sub(st.sessionStart) / time.Second)
}

// IsRunning reports whether a session is in progress.
func (st *StudyTracker) IsRunning() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.running
}

// State returns the current timer state in its persisted shape.
func (st *StudyTracker) State() types.TimerState {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.running {
		return types.TimerState{IsRunning: false, StartTime: nil}
	}
	millis := st.sessionStart.UnixMilli()
	return types.TimerState{IsRunning: true, StartTime: &millis}
}

func (st *StudyTracker) persistStopped(ctx context.Context) error {
	return st.store.SaveTimerState(ctx, &types.TimerState{IsRunning: false, StartTime: nil})
}

func (st *StudyTracker) emitTimerChanged() {
	st.bus.Emit(events.TopicTimerChanged, st.State())
}
