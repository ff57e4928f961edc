package app

import (
	"context"
	"fmt"
	"time"

	"execmode/internal/database"
	"execmode/internal/events"
	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
	"execmode/internal/platform"
	"execmode/internal/repository"
	"execmode/internal/services"
	"execmode/internal/types"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App wires the stores, services, and event bus behind the Wails bindings.
type App struct {
	ctx         context.Context
	environment string

	dbService database.Service
	store     repository.Store
	bus       *events.Bus
	logger    logging.Logger

	tracker   *services.StudyTracker
	goals     *services.GoalService
	quotes    *services.QuoteService
	dashboard *services.DashboardService
	reminder  *services.ReminderService

	unsubscribe []func()
}

// NewApp creates the application with all dependencies wired.
func NewApp(env string) (*App, error) {
	logger := logging.NewDefaultLogger()

	config := database.ConfigForEnvironment(env)

	dbService := database.NewSQLiteService(logger)
	if err := dbService.Connect(context.Background(), config); err != nil {
		return nil, err
	}
	if err := dbService.Migrate(context.Background()); err != nil {
		dbService.Close()
		return nil, err
	}

	store := repository.NewSQLiteStore(dbService, logger)
	bus := events.NewBus()

	tracker := services.NewStudyTracker(store, bus, logger)
	goals := services.NewGoalService(store, bus, logger)
	quotes := services.NewQuoteService(store, logger)
	dashboard := services.NewDashboardService(store, goals, logger)
	reminder := services.NewReminderService(store, platform.NewNotifier(), logger)

	return &App{
		environment: env,
		dbService:   dbService,
		store:       store,
		bus:         bus,
		logger:      logger,
		tracker:     tracker,
		goals:       goals,
		quotes:      quotes,
		dashboard:   dashboard,
		reminder:    reminder,
	}, nil
}

// Startup is called at application startup
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	if err := a.checkDatabase(ctx); err != nil {
		a.logger.Error("Database health check failed during startup", "error", err.Error())
	}

	if err := a.tracker.Restore(ctx); err != nil {
		a.logger.Warn("Could not restore timer state", "error", err.Error())
	}

	a.forwardBusToFrontend()
	a.reminder.Start(ctx)

	a.logger.Info("Application started", "environment", a.environment)
}

// checkDatabase verifies database health and reconnects once when the
// failure looks transient.
func (a *App) checkDatabase(ctx context.Context) error {
	if a.dbService == nil {
		return storeerrors.HandleConnectionError("startup", "database service not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := a.dbService.Health(healthCtx)
	if err == nil {
		return nil
	}
	if !storeerrors.IsRetryable(err) {
		return err
	}

	a.logger.Warn("Database unhealthy, attempting to reconnect", "error", err.Error())

	reconnectCtx, reconnectCancel := context.WithTimeout(ctx, 10*time.Second)
	defer reconnectCancel()

	config := database.ConfigForEnvironment(a.environment)
	if err := a.dbService.Connect(reconnectCtx, config); err != nil {
		return fmt.Errorf("reconnect failed: %w", err)
	}
	if err := a.dbService.Migrate(reconnectCtx); err != nil {
		return fmt.Errorf("migration after reconnect failed: %w", err)
	}
	return nil
}

// forwardBusToFrontend relays every bus topic to the webview as a Wails
// runtime event carrying the same name and payload.
func (a *App) forwardBusToFrontend() {
	topics := []events.Topic{
		events.TopicLedgerChanged,
		events.TopicGoalChanged,
		events.TopicTimerChanged,
	}
	for _, topic := range topics {
		a.unsubscribe = append(a.unsubscribe, a.bus.Subscribe(topic, func(e events.Event) {
			if a.ctx != nil {
				runtime.EventsEmit(a.ctx, string(e.Topic), e.Payload)
			}
		}))
	}
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {
}

// BeforeClose is called when the application is about to quit
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	return false
}

// Shutdown is called at application termination. A running timer session is
// deliberately left running; its persisted start time lets the next launch
// resume it.
func (a *App) Shutdown(ctx context.Context) {
	a.logger.Info("Starting application shutdown")

	a.reminder.Stop()

	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.unsubscribe = nil

	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.logger.Error("Error closing database", "error", err.Error())
		}
	}

	a.logger.Info("Application shutdown completed")
}

// StartTimer begins a study session.
func (a *App) StartTimer() error {
	return a.tracker.Start(a.ctx)
}

// PauseTimer stops the session and credits elapsed time to today's ledger.
func (a *App) PauseTimer() error {
	return a.tracker.Pause(a.ctx)
}

// ResetTimer stops the session, crediting any elapsed time first.
func (a *App) ResetTimer() error {
	return a.tracker.Reset(a.ctx)
}

// GetTimerState returns the timer state for the frontend.
func (a *App) GetTimerState() types.TimerState {
	return a.tracker.State()
}

// GetElapsedSeconds returns the running session's elapsed whole seconds.
func (a *App) GetElapsedSeconds() int64 {
	return a.tracker.Elapsed()
}

// LogStudyTime credits seconds directly to today's ledger entry.
func (a *App) LogStudyTime(seconds int64) error {
	return a.tracker.LogTime(a.ctx, seconds)
}

// GetDashboard returns the full derived-metric snapshot.
func (a *App) GetDashboard() (*types.DashboardSnapshot, error) {
	return a.dashboard.Snapshot(a.ctx)
}

// GetHeatmap returns the 84-day activity grid.
func (a *App) GetHeatmap() ([]types.HeatmapDay, error) {
	return a.dashboard.Heatmap(a.ctx)
}

// GetDailyProgress returns the 30-day progress chart.
func (a *App) GetDailyProgress() ([]types.DailyProgressPoint, error) {
	return a.dashboard.DailyProgress(a.ctx)
}

// GetTodayHours returns today's logged hours.
func (a *App) GetTodayHours() (float64, error) {
	return a.dashboard.TodayHours(a.ctx)
}

// GetGoal returns the goal configuration, seeding the default on first read.
func (a *App) GetGoal() (*types.GoalConfig, error) {
	return a.goals.Get(a.ctx)
}

// SetGoal validates and persists a new goal configuration.
func (a *App) SetGoal(config types.GoalConfig) error {
	return a.goals.Set(a.ctx, &config)
}

// ResetGoal replaces the goal and optionally wipes the study history.
func (a *App) ResetGoal(config types.GoalConfig, wipeHistory bool) error {
	return a.goals.Reset(a.ctx, &config, wipeHistory)
}

// GetDailyQuote returns today's motivational quote.
func (a *App) GetDailyQuote() (*types.Quote, error) {
	return a.quotes.GetDailyQuote(a.ctx)
}

// GetLogger returns the application's structured logger
func (a *App) GetLogger() logging.Logger {
	return a.logger
}
