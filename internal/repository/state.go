package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
	"execmode/internal/types"
)

// GetStateValue returns the raw JSON document stored under key and whether
// the key exists.
func (r *SQLiteStore) GetStateValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	var found bool

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		err := r.q.QueryRowContext(ctx,
			"SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("GetStateValue", err, r.classifyError(err), map[string]string{
				"key": key,
			})

			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in GetStateValue", "error", err, "key", key)
			} else {
				logging.LogError(r.logger, storeErr, "GetStateValue", map[string]any{
					"key": key,
				})
			}

			return storeErr
		}

		found = true
		return nil
	})

	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

// SetStateValue stores a raw JSON document under key, replacing any previous
// value.
func (r *SQLiteStore) SetStateValue(ctx context.Context, key, value string) error {
	start := time.Now()

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO app_state (key, value, updated_at)
			VALUES (?, ?, datetime('now'))
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at`,
			key, value)

		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("SetStateValue", err, r.classifyError(err), map[string]string{
				"key": key,
			})

			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in SetStateValue", "error", err, "key", key)
			} else {
				logging.LogError(r.logger, storeErr, "SetStateValue", map[string]any{
					"key": key,
				})
			}

			return storeErr
		}

		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "SetStateValue", time.Since(start), map[string]any{
			"key": key,
		})
	}

	return err
}

// DeleteStateValue removes the document stored under key. Deleting a missing
// key is not an error.
func (r *SQLiteStore) DeleteStateValue(ctx context.Context, key string) error {
	return storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		_, err := r.q.ExecContext(ctx, "DELETE FROM app_state WHERE key = ?", key)
		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("DeleteStateValue", err, r.classifyError(err), map[string]string{
				"key": key,
			})

			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in DeleteStateValue", "error", err, "key", key)
			} else {
				logging.LogError(r.logger, storeErr, "DeleteStateValue", map[string]any{
					"key": key,
				})
			}

			return storeErr
		}
		return nil
	})
}

// GetGoalConfig loads the persisted goal configuration. A missing document
// returns a not-found error so callers can seed the default; a document that
// fails to parse returns a corruption error so callers can recover.
func (r *SQLiteStore) GetGoalConfig(ctx context.Context) (*types.GoalConfig, error) {
	raw, found, err := r.GetStateValue(ctx, StateKeyGoalConfig)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, storeerrors.HandleNotFound("GetGoalConfig", "goal_config", StateKeyGoalConfig)
	}

	var config types.GoalConfig
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		corruptErr := storeerrors.HandleCorruptionError("GetGoalConfig", "goal_config", err.Error())
		r.logger.Warn("Persisted goal configuration is malformed, caller should recover to defaults",
			"error", err)
		return nil, corruptErr
	}

	return &config, nil
}

// SaveGoalConfig persists the goal configuration as a JSON document.
// Timestamps round-trip via RFC 3339 without precision loss.
func (r *SQLiteStore) SaveGoalConfig(ctx context.Context, config *types.GoalConfig) error {
	if config == nil {
		err := storeerrors.HandleValidationError("SaveGoalConfig", "config", "nil", "goal configuration is required")
		logging.LogError(r.logger, err, "SaveGoalConfig", nil)
		return err
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return storeerrors.NewStoreError("SaveGoalConfig", err, storeerrors.ErrCodeInternal)
	}

	return r.SetStateValue(ctx, StateKeyGoalConfig, string(raw))
}

// GetTimerState loads the persisted chronograph timer state. A missing
// document returns a not-found error; a malformed one returns a corruption
// error. Either way callers fall back to a stopped timer.
func (r *SQLiteStore) GetTimerState(ctx context.Context) (*types.TimerState, error) {
	raw, found, err := r.GetStateValue(ctx, StateKeyTimerState)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, storeerrors.HandleNotFound("GetTimerState", "timer_state", StateKeyTimerState)
	}

	var state types.TimerState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		corruptErr := storeerrors.HandleCorruptionError("GetTimerState", "timer_state", err.Error())
		r.logger.Warn("Persisted timer state is malformed, caller should recover to a stopped timer",
			"error", err)
		return nil, corruptErr
	}

	return &state, nil
}

// SaveTimerState persists the chronograph timer state as a JSON document.
func (r *SQLiteStore) SaveTimerState(ctx context.Context, state *types.TimerState) error {
	if state == nil {
		err := storeerrors.HandleValidationError("SaveTimerState", "state", "nil", "timer state is required")
		logging.LogError(r.logger, err, "SaveTimerState", nil)
		return err
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return storeerrors.NewStoreError("SaveTimerState", err, storeerrors.ErrCodeInternal)
	}

	return r.SetStateValue(ctx, StateKeyTimerState, string(raw))
}
