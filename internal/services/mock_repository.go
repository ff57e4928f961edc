package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"execmode/internal/infrastructure/errors"
	"execmode/internal/repository"
	"execmode/internal/types"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	mu             sync.RWMutex
	sessions       map[string]int64  // key: date string (YYYY-MM-DD)
	state          map[string]string // key: app_state key
	addCallCount   int
	clearCallCount int
	saveCallCount  int
	txCallCount    int
	shouldFailAdd  bool
	shouldFailLoad bool
	shouldFailSave bool
	shouldFailTx   bool
}

// NewMockStore creates a new mock store for testing
func NewMockStore() *MockStore {
	return &MockStore{
		sessions: make(map[string]int64),
		state:    make(map[string]string),
	}
}

// SetFailureModes configures the mock to simulate failures
func (m *MockStore) SetFailureModes(add, load, save, tx bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailAdd = add
	m.shouldFailLoad = load
	m.shouldFailSave = save
	m.shouldFailTx = tx
}

// GetCallCounts returns the number of times each mutation was called
func (m *MockStore) GetCallCounts() (add, clear, save, tx int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.addCallCount, m.clearCallCount, m.saveCallCount, m.txCallCount
}

// AddSeconds implements the LedgerRepository interface
func (m *MockStore) AddSeconds(ctx context.Context, date string, seconds int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addCallCount++

	if m.shouldFailAdd {
		return errors.NewStoreError("AddSeconds", fmt.Errorf("mock add failure"), errors.ErrCodeConnection)
	}
	if seconds < 0 {
		return errors.HandleInvalidDuration("AddSeconds", seconds)
	}
	if _, err := time.Parse(types.DayKeyLayout, date); err != nil {
		return errors.HandleValidationError("AddSeconds", "date", date, "date must use YYYY-MM-DD format")
	}

	m.sessions[date] += seconds
	return nil
}

// GetSeconds implements the LedgerRepository interface
func (m *MockStore) GetSeconds(ctx context.Context, date string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.shouldFailLoad {
		return 0, errors.NewStoreError("GetSeconds", fmt.Errorf("mock load failure"), errors.ErrCodeConnection)
	}

	return m.sessions[date], nil
}

// GetAllSessions implements the LedgerRepository interface
func (m *MockStore) GetAllSessions(ctx context.Context) ([]types.StudySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.shouldFailLoad {
		return nil, errors.NewStoreError("GetAllSessions", fmt.Errorf("mock load failure"), errors.ErrCodeConnection)
	}

	result := make([]types.StudySession, 0, len(m.sessions))
	for date, seconds := range m.sessions {
		result = append(result, types.StudySession{Date: date, Seconds: seconds})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

// ClearSessions implements the LedgerRepository interface
func (m *MockStore) ClearSessions(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearCallCount++

	if m.shouldFailSave {
		return errors.NewStoreError("ClearSessions", fmt.Errorf("mock clear failure"), errors.ErrCodeConnection)
	}

	m.sessions = make(map[string]int64)
	return nil
}

// GetGoalConfig implements the StateRepository interface
func (m *MockStore) GetGoalConfig(ctx context.Context) (*types.GoalConfig, error) {
	raw, found, err := m.GetStateValue(ctx, repository.StateKeyGoalConfig)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.HandleNotFound("GetGoalConfig", "goal_config", repository.StateKeyGoalConfig)
	}

	var config types.GoalConfig
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		return nil, errors.HandleCorruptionError("GetGoalConfig", "goal_config", err.Error())
	}
	return &config, nil
}

// SaveGoalConfig implements the StateRepository interface
func (m *MockStore) SaveGoalConfig(ctx context.Context, config *types.GoalConfig) error {
	if config == nil {
		return errors.HandleValidationError("SaveGoalConfig", "config", "nil", "goal configuration is required")
	}

	data, err := json.Marshal(config)
	if err != nil {
		return errors.NewStoreError("SaveGoalConfig", err, errors.ErrCodeInternal)
	}
	return m.SetStateValue(ctx, repository.StateKeyGoalConfig, string(data))
}

// GetTimerState implements the StateRepository interface
func (m *MockStore) GetTimerState(ctx context.Context) (*types.TimerState, error) {
	raw, found, err := m.GetStateValue(ctx, repository.StateKeyTimerState)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.HandleNotFound("GetTimerState", "timer_state", repository.StateKeyTimerState)
	}

	var state types.TimerState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, errors.HandleCorruptionError("GetTimerState", "timer_state", err.Error())
	}
	return &state, nil
}

// SaveTimerState implements the StateRepository interface
func (m *MockStore) SaveTimerState(ctx context.Context, state *types.TimerState) error {
	if state == nil {
		return errors.HandleValidationError("SaveTimerState", "state", "nil", "timer state is required")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return errors.NewStoreError("SaveTimerState", err, errors.ErrCodeInternal)
	}
	return m.SetStateValue(ctx, repository.StateKeyTimerState, string(data))
}

// GetStateValue implements the StateRepository interface
func (m *MockStore) GetStateValue(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.shouldFailLoad {
		return "", false, errors.NewStoreError("GetStateValue", fmt.Errorf("mock load failure"), errors.ErrCodeConnection)
	}

	value, found := m.state[key]
	return value, found, nil
}

// SetStateValue implements the StateRepository interface
func (m *MockStore) SetStateValue(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveCallCount++

	if m.shouldFailSave {
		return errors.NewStoreError("SetStateValue", fmt.Errorf("mock save failure"), errors.ErrCodeConnection)
	}

	m.state[key] = value
	return nil
}

// DeleteStateValue implements the StateRepository interface
func (m *MockStore) DeleteStateValue(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFailSave {
		return errors.NewStoreError("DeleteStateValue", fmt.Errorf("mock delete failure"), errors.ErrCodeConnection)
	}

	delete(m.state, key)
	return nil
}

// WithTransaction implements the Store interface
func (m *MockStore) WithTransaction(ctx context.Context, fn func(store repository.Store) error) error {
	m.mu.Lock()
	m.txCallCount++
	shouldFail := m.shouldFailTx
	m.mu.Unlock()

	if shouldFail {
		return errors.HandleTransactionError("WithTransaction", "begin", "mock transaction failure")
	}

	// Execute the function with this mock store
	return fn(m)
}

// SeedSession sets a day's accumulated seconds directly, bypassing validation
func (m *MockStore) SeedSession(date string, seconds int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[date] = seconds
}

// SeedState sets a raw state document directly
func (m *MockStore) SeedState(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[key] = value
}
