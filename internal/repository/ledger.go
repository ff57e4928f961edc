package repository

import (
	"context"
	"fmt"
	"time"

	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
	"execmode/internal/types"
)

// AddSeconds adds study time to a day's accumulated total with retry logic.
// The upsert is additive: concurrent writers never lose increments.
func (r *SQLiteStore) AddSeconds(ctx context.Context, date string, seconds int64) error {
	start := time.Now()

	if seconds < 0 {
		err := storeerrors.HandleInvalidDuration("AddSeconds", seconds)
		logging.LogError(r.logger, err, "AddSeconds", map[string]any{
			"date": date,
		})
		return err
	}

	if _, err := time.Parse(types.DayKeyLayout, date); err != nil {
		valErr := storeerrors.HandleValidationError("AddSeconds", "date", date, "date must use YYYY-MM-DD format")
		logging.LogError(r.logger, valErr, "AddSeconds", nil)
		return valErr
	}

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO study_sessions (date, seconds, updated_at)
			VALUES (?, ?, datetime('now'))
			ON CONFLICT(date) DO UPDATE SET
				seconds = study_sessions.seconds + excluded.seconds,
				updated_at = excluded.updated_at`,
			date, seconds)

		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("AddSeconds", err, r.classifyError(err), map[string]string{
				"date":    date,
				"seconds": fmt.Sprintf("%d", seconds),
			})

			// Retryable errors stay at debug level, non-retryable get the
			// full structured treatment
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in AddSeconds", "error", err, "date", date)
			} else {
				logging.LogError(r.logger, storeErr, "AddSeconds", map[string]any{
					"date":    date,
					"seconds": seconds,
				})
			}

			return storeErr
		}

		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "AddSeconds", time.Since(start), map[string]any{
			"date":    date,
			"seconds": seconds,
		})
	}

	return err
}

// GetSeconds returns the accumulated seconds for a day. Days with no
// recorded time report zero rather than an error.
func (r *SQLiteStore) GetSeconds(ctx context.Context, date string) (int64, error) {
	var seconds int64

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		err := r.q.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(seconds), 0) FROM study_sessions WHERE date = ?",
			date).Scan(&seconds)

		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("GetSeconds", err, r.classifyError(err), map[string]string{
				"date": date,
			})

			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in GetSeconds", "error", err, "date", date)
			} else {
				logging.LogError(r.logger, storeErr, "GetSeconds", map[string]any{
					"date": date,
				})
			}

			return storeErr
		}

		return nil
	})

	if err != nil {
		return 0, err
	}
	return seconds, nil
}

// GetAllSessions returns every recorded day ordered by date ascending.
func (r *SQLiteStore) GetAllSessions(ctx context.Context) ([]types.StudySession, error) {
	start := time.Now()

	var sessions []types.StudySession

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		rows, err := r.q.QueryContext(ctx,
			"SELECT date, seconds FROM study_sessions ORDER BY date ASC")
		if err != nil {
			storeErr := storeerrors.NewStoreError("GetAllSessions", err, r.classifyError(err))

			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in GetAllSessions", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "GetAllSessions", nil)
			}

			return storeErr
		}
		defer rows.Close()

		result := make([]types.StudySession, 0)
		for rows.Next() {
			var session types.StudySession
			if err := rows.Scan(&session.Date, &session.Seconds); err != nil {
				return storeerrors.NewStoreErrorWithContext("GetAllSessions", err, r.classifyError(err), map[string]string{
					"phase": "scan",
				})
			}
			result = append(result, session)
		}
		if err := rows.Err(); err != nil {
			return storeerrors.NewStoreErrorWithContext("GetAllSessions", err, r.classifyError(err), map[string]string{
				"phase": "iterate",
			})
		}

		sessions = result
		return nil
	})

	if err != nil {
		return nil, err
	}

	logging.LogOperation(r.logger, "GetAllSessions", time.Since(start), map[string]any{
		"session_count": len(sessions),
	})
	return sessions, nil
}

// ClearSessions removes all recorded study time.
func (r *SQLiteStore) ClearSessions(ctx context.Context) error {
	start := time.Now()

	var deleted int64

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		result, err := r.q.ExecContext(ctx, "DELETE FROM study_sessions")
		if err != nil {
			storeErr := storeerrors.NewStoreError("ClearSessions", err, r.classifyError(err))

			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error in ClearSessions", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "ClearSessions", nil)
			}

			return storeErr
		}

		if n, err := result.RowsAffected(); err == nil {
			deleted = n
		}
		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "ClearSessions", time.Since(start), map[string]any{
			"rows_deleted": deleted,
		})
	}

	return err
}
