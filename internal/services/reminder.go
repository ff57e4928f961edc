package services

import (
	"context"
	"strconv"
	"time"

	"execmode/internal/infrastructure/logging"
	"execmode/internal/platform"
	"execmode/internal/repository"
	"execmode/internal/types"
)

const (
	// reminderCheckInterval is how often the background loop re-evaluates the
	// reminder conditions.
	reminderCheckInterval = 30 * time.Minute

	// reminderCooldown is the minimum gap between two reminders.
	reminderCooldown = time.Hour

	reminderWindowStartHour = 9
	reminderWindowEndHour   = 21

	reminderTitle = "Execution Mode"
	reminderBody  = "Time is running. Start your deep work."
)

// ReminderService nags the user when a day is slipping away with nothing
// logged. Reminders fire only between 09:00 and 21:00, only while today's
// ledger entry is zero, and at most once per hour. The last-fired timestamp
// is persisted so restarts do not reset the cooldown.
type ReminderService struct {
	store    repository.Store
	notifier platform.Notifier
	logger   logging.Logger

	stop chan struct{}
	now  func() time.Time
}

// NewReminderService creates a reminder service.
func NewReminderService(store repository.Store, notifier platform.Notifier, logger logging.Logger) *ReminderService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &ReminderService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start begins the background reminder loop. The first check runs
// immediately.
func (rs *ReminderService) Start(ctx context.Context) {
	go rs.loop(ctx)
}

// Stop terminates the background loop.
func (rs *ReminderService) Stop() {
	select {
	case <-rs.stop:
	default:
		close(rs.stop)
	}
}

func (rs *ReminderService) loop(ctx context.Context) {
	ticker := time.NewTicker(reminderCheckInterval)
	defer ticker.Stop()

	rs.runCheck(ctx)

	for {
		select {
		case <-ticker.C:
			rs.runCheck(ctx)
		case <-rs.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (rs *ReminderService) runCheck(ctx context.Context) {
	if err := rs.Check(ctx); err != nil {
		rs.logger.Warn("Reminder check failed", "error", err.Error())
	}
}

// Check evaluates the reminder conditions once and fires a notification when
// they all hold.
func (rs *ReminderService) Check(ctx context.Context) error {
	now := rs.now()

	hour := now.Hour()
	if hour < reminderWindowStartHour || hour >= reminderWindowEndHour {
		return nil
	}

	seconds, err := rs.store.GetSeconds(ctx, types.DayKey(now))
	if err != nil {
		return err
	}
	if seconds > 0 {
		return nil
	}

	last, err := rs.lastReminderAt(ctx)
	if err != nil {
		return err
	}
	if !last.IsZero() && now.Sub(last) < reminderCooldown {
		return nil
	}

	if err := rs.notifier.Notify(reminderTitle, reminderBody); err != nil {
		return err
	}

	rs.logger.Info("Reminder notification sent", "hour", hour)
	return rs.store.SetStateValue(ctx, repository.StateKeyLastReminder,
		strconv.FormatInt(now.UnixMilli(), 10))
}

// lastReminderAt reads the persisted last-fired timestamp. Missing or
// malformed state counts as never fired.
func (rs *ReminderService) lastReminderAt(ctx context.Context) (time.Time, error) {
	raw, found, err := rs.store.GetStateValue(ctx, repository.StateKeyLastReminder)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		return time.Time{}, nil
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		rs.logger.Warn("Persisted reminder timestamp is malformed, ignoring", "value", raw)
		return time.Time{}, nil
	}
	return time.UnixMilli(millis), nil
}
