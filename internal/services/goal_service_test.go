package services

import (
	"context"
	"testing"
	"time"

	"execmode/internal/events"
	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/repository"
	"execmode/internal/types"
)

func newTestGoalService(t *testing.T, now time.Time) (*GoalService, *MockStore, *events.Bus) {
	t.Helper()

	store := NewMockStore()
	bus := events.NewBus()
	service := NewGoalService(store, bus, nil)
	service.now = func() time.Time { return now }
	return service, store, bus
}

func TestGoalService_GetSeedsDefaultOnFirstRead(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, store, _ := newTestGoalService(t, now)
	ctx := context.Background()

	config, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if config.Name != "CFA Level 1" {
		t.Errorf("Expected default name CFA Level 1, got %q", config.Name)
	}
	expectedTarget := time.Date(2026, 6, 30, 23, 59, 59, 0, time.Local)
	if !config.TargetDate.Equal(expectedTarget) {
		t.Errorf("Expected target %v, got %v", expectedTarget, config.TargetDate)
	}
	if !config.StartDate.Equal(now) {
		t.Errorf("Expected start date %v, got %v", now, config.StartDate)
	}

	// The seed must be persisted, not recomputed per read
	if _, found, _ := store.GetStateValue(ctx, repository.StateKeyGoalConfig); !found {
		t.Error("Expected seeded default to be persisted")
	}

	_, _, savesAfterSeed, _ := store.GetCallCounts()
	if _, err := service.Get(ctx); err != nil {
		t.Fatalf("Second get failed: %v", err)
	}
	_, _, savesAfterSecond, _ := store.GetCallCounts()
	if savesAfterSecond != savesAfterSeed {
		t.Error("Second read must not rewrite the configuration")
	}
}

func TestGoalService_GetRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, _, _ := newTestGoalService(t, now)
	ctx := context.Background()

	saved := &types.GoalConfig{
		Name:       "FRM Part 1",
		TargetDate: time.Date(2027, 5, 15, 23, 59, 59, 0, time.Local),
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local),
	}
	if err := service.Set(ctx, saved); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	loaded, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.Name != saved.Name {
		t.Errorf("Expected name %q, got %q", saved.Name, loaded.Name)
	}
	if !loaded.TargetDate.Equal(saved.TargetDate) {
		t.Errorf("Expected target %v, got %v", saved.TargetDate, loaded.TargetDate)
	}
	if !loaded.StartDate.Equal(saved.StartDate) {
		t.Errorf("Expected start %v, got %v", saved.StartDate, loaded.StartDate)
	}
}

func TestGoalService_GetRecoversFromMalformedState(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, store, _ := newTestGoalService(t, now)
	ctx := context.Background()

	store.SeedState(repository.StateKeyGoalConfig, "{broken json")

	config, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("Expected recovery from malformed state, got %v", err)
	}
	if config.Name != "CFA Level 1" {
		t.Errorf("Expected reseeded default, got %q", config.Name)
	}

	// The reseeded default replaces the malformed document
	if _, err := service.Get(ctx); err != nil {
		t.Fatalf("Get after recovery failed: %v", err)
	}
}

func TestGoalService_SetValidation(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, _, _ := newTestGoalService(t, now)
	ctx := context.Background()

	valid := types.GoalConfig{
		Name:       "CFA Level 2",
		TargetDate: time.Date(2027, 6, 30, 23, 59, 59, 0, time.Local),
		StartDate:  now,
	}

	tests := []struct {
		name   string
		mutate func(c *types.GoalConfig) *types.GoalConfig
	}{
		{"nil config", func(c *types.GoalConfig) *types.GoalConfig { return nil }},
		{"empty name", func(c *types.GoalConfig) *types.GoalConfig { c.Name = ""; return c }},
		{"whitespace name", func(c *types.GoalConfig) *types.GoalConfig { c.Name = "   "; return c }},
		{"zero target date", func(c *types.GoalConfig) *types.GoalConfig { c.TargetDate = time.Time{}; return c }},
		{"zero start date", func(c *types.GoalConfig) *types.GoalConfig { c.StartDate = time.Time{}; return c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			err := service.Set(ctx, tt.mutate(&config))
			if !storeerrors.IsValidation(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestGoalService_SetEmitsGoalChanged(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, _, bus := newTestGoalService(t, now)

	goalEvents := 0
	bus.Subscribe(events.TopicGoalChanged, func(events.Event) { goalEvents++ })

	config := &types.GoalConfig{
		Name:       "CFA Level 2",
		TargetDate: time.Date(2027, 6, 30, 23, 59, 59, 0, time.Local),
		StartDate:  now,
	}
	if err := service.Set(context.Background(), config); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if goalEvents != 1 {
		t.Errorf("Expected 1 goal event, got %d", goalEvents)
	}
}

func TestGoalService_ResetWithWipeClearsLedger(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, store, bus := newTestGoalService(t, now)
	ctx := context.Background()

	store.SeedSession("2026-08-30", 14400)
	store.SeedSession("2026-08-29", 7200)

	ledgerEvents := 0
	bus.Subscribe(events.TopicLedgerChanged, func(events.Event) { ledgerEvents++ })

	config := &types.GoalConfig{
		Name:       "CFA Level 2",
		TargetDate: time.Date(2027, 6, 30, 23, 59, 59, 0, time.Local),
		StartDate:  now,
	}
	if err := service.Reset(ctx, config, true); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	sessions, err := store.GetAllSessions(ctx)
	if err != nil {
		t.Fatalf("GetAllSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected an empty ledger after wipe, got %d sessions", len(sessions))
	}
	if ledgerEvents != 1 {
		t.Errorf("Expected 1 ledger event, got %d", ledgerEvents)
	}
}

func TestGoalService_ResetWithoutWipeKeepsLedger(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, store, _ := newTestGoalService(t, now)
	ctx := context.Background()

	store.SeedSession("2026-08-30", 14400)

	config := &types.GoalConfig{
		Name:       "CFA Level 2",
		TargetDate: time.Date(2027, 6, 30, 23, 59, 59, 0, time.Local),
		StartDate:  now,
	}
	if err := service.Reset(ctx, config, false); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	sessions, err := store.GetAllSessions(ctx)
	if err != nil {
		t.Fatalf("GetAllSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Expected ledger to survive, got %d sessions", len(sessions))
	}
}

func TestGoalService_ResetStopsWhenSaveFails(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	service, store, _ := newTestGoalService(t, now)
	ctx := context.Background()

	store.SeedSession("2026-08-30", 14400)
	store.SetFailureModes(false, false, true, false)

	config := &types.GoalConfig{
		Name:       "CFA Level 2",
		TargetDate: time.Date(2027, 6, 30, 23, 59, 59, 0, time.Local),
		StartDate:  now,
	}
	if err := service.Reset(ctx, config, true); err == nil {
		t.Fatal("Expected reset to fail when the save fails")
	}

	// History must survive when the new goal never landed
	store.SetFailureModes(false, false, false, false)
	sessions, err := store.GetAllSessions(ctx)
	if err != nil {
		t.Fatalf("GetAllSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Expected ledger to survive a failed reset, got %d sessions", len(sessions))
	}
}
