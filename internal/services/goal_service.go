package services

import (
	"context"
	"strings"
	"time"

	"execmode/internal/events"
	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
	"execmode/internal/repository"
	"execmode/internal/types"
)

// GoalService manages the singleton goal configuration behind the countdown
// displays.
type GoalService struct {
	store  repository.Store
	bus    *events.Bus
	logger logging.Logger
	now    func() time.Time
}

// NewGoalService creates a goal service with repository and bus dependencies.
func NewGoalService(store repository.Store, bus *events.Bus, logger logging.Logger) *GoalService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &GoalService{
		store:  store,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// DefaultGoalConfig is the configuration seeded on first read. The start date
// is the moment of seeding, so percent-used begins at zero.
func DefaultGoalConfig(now time.Time) types.GoalConfig {
	return types.GoalConfig{
		Name:       "CFA Level 1",
		TargetDate: time.Date(2026, 6, 30, 23, 59, 59, 0, time.Local),
		StartDate:  now,
	}
}

// Get returns the goal configuration, seeding and persisting the default on
// first read. Malformed persisted state also recovers to a freshly seeded
// default instead of surfacing a parse error.
func (g *GoalService) Get(ctx context.Context) (*types.GoalConfig, error) {
	config, err := g.store.GetGoalConfig(ctx)
	if err == nil {
		return config, nil
	}

	switch {
	case storeerrors.IsNotFound(err):
		// First run, seed the default
	case storeerrors.IsCorruption(err):
		g.logger.Warn("Persisted goal configuration is malformed, reseeding default",
			"error", err.Error())
	default:
		return nil, err
	}

	seeded := DefaultGoalConfig(g.now())
	if saveErr := g.store.SaveGoalConfig(ctx, &seeded); saveErr != nil {
		return nil, saveErr
	}

	g.logger.Info("Seeded default goal configuration",
		"name", seeded.Name,
		"target_date", seeded.TargetDate.Format(time.RFC3339))
	return &seeded, nil
}

// Set validates and persists a new goal configuration.
func (g *GoalService) Set(ctx context.Context, config *types.GoalConfig) error {
	if err := validateGoalConfig(config); err != nil {
		return err
	}

	if err := g.store.SaveGoalConfig(ctx, config); err != nil {
		return err
	}

	g.bus.Emit(events.TopicGoalChanged, *config)
	return nil
}

// Reset replaces the goal configuration and optionally wipes the study
// ledger. The two writes are sequential, not transactional: a new goal can
// land while old history survives a crash between them.
func (g *GoalService) Reset(ctx context.Context, config *types.GoalConfig, wipeHistory bool) error {
	if err := g.Set(ctx, config); err != nil {
		return err
	}

	if !wipeHistory {
		return nil
	}

	if err := g.store.ClearSessions(ctx); err != nil {
		return err
	}

	g.logger.Info("Study history wiped during goal reset", "goal", config.Name)
	g.bus.Emit(events.TopicLedgerChanged, int64(0))
	return nil
}

func validateGoalConfig(config *types.GoalConfig) error {
	if config == nil {
		return storeerrors.HandleValidationError("SetGoalConfig", "config", "nil", "goal configuration is required")
	}
	if strings.TrimSpace(config.Name) == "" {
		return storeerrors.HandleValidationError("SetGoalConfig", "name", config.Name, "goal name must be non-empty")
	}
	if config.TargetDate.IsZero() {
		return storeerrors.HandleValidationError("SetGoalConfig", "targetDate", "zero", "target date is required")
	}
	if config.StartDate.IsZero() {
		return storeerrors.HandleValidationError("SetGoalConfig", "startDate", "zero", "start date is required")
	}
	return nil
}
