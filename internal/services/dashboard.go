package services

import (
	"context"
	"time"

	"execmode/internal/clock"
	"execmode/internal/infrastructure/logging"
	"execmode/internal/metrics"
	"execmode/internal/repository"
	"execmode/internal/types"
)

// DashboardService recomputes every derived metric from the ledger on each
// request. Nothing here is cached; the ledger is the single source of truth
// and a snapshot is cheap to rebuild.
type DashboardService struct {
	store  repository.Store
	goals  *GoalService
	logger logging.Logger
	now    func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store repository.Store, goals *GoalService, logger logging.Logger) *DashboardService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &DashboardService{
		store:  store,
		goals:  goals,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot rebuilds the full dashboard from the ledger and goal
// configuration.
func (d *DashboardService) Snapshot(ctx context.Context) (*types.DashboardSnapshot, error) {
	sessions, err := d.store.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := d.goals.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := d.now()
	ledger := metrics.BuildLedger(sessions)

	todayHours := metrics.TodayHours(ledger, now)
	missed := metrics.CheckMissedDay(ledger, now)
	phase := metrics.Phase(now)

	return &types.DashboardSnapshot{
		TodayHours:    todayHours,
		CurrentStreak: metrics.CurrentStreak(ledger, now),
		LongestStreak: metrics.LongestStreak(ledger, now),
		StreakBroken:  metrics.IsStreakBroken(ledger, now),
		MissedDay:     missed,
		Tier:          metrics.Tier(todayHours, now),
		Phase:         phase,
		Message:       metrics.PhaseMessage(phase),
		Heatmap:       metrics.HeatmapSeries(ledger, now),
		DailyProgress: metrics.DailyProgressSeries(ledger, now),
		Remaining:     clock.TimeRemaining(goal.TargetDate, now),
		Goal:          clock.Progress(*goal, now),
		Year:          clock.DayOfYearProgress(now),
		Alerts:        metrics.FailureAlerts(todayHours, missed, now),
	}, nil
}

// Heatmap returns the 84-day activity grid on its own, for callers that do
// not need the full snapshot.
func (d *DashboardService) Heatmap(ctx context.Context) ([]types.HeatmapDay, error) {
	ledger, err := d.ledger(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.HeatmapSeries(ledger, d.now()), nil
}

// DailyProgress returns the 30-day progress chart on its own.
func (d *DashboardService) DailyProgress(ctx context.Context) ([]types.DailyProgressPoint, error) {
	ledger, err := d.ledger(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.DailyProgressSeries(ledger, d.now()), nil
}

// TodayHours returns today's logged hours.
func (d *DashboardService) TodayHours(ctx context.Context) (float64, error) {
	ledger, err := d.ledger(ctx)
	if err != nil {
		return 0, err
	}
	return metrics.TodayHours(ledger, d.now()), nil
}

func (d *DashboardService) ledger(ctx context.Context) (metrics.Ledger, error) {
	sessions, err := d.store.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.BuildLedger(sessions), nil
}
