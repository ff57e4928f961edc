package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
)

// WithTransaction executes a function within a database transaction with
// retry logic. The store handed to fn routes every query through the
// transaction.
func (r *SQLiteStore) WithTransaction(ctx context.Context, fn func(store Store) error) error {
	start := time.Now()

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		tx, err := r.conn.BeginTx(ctx, nil)
		if err != nil {
			storeErr := storeerrors.NewStoreError("WithTransaction.Begin", err, r.classifyError(err))
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error beginning transaction", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "WithTransaction.Begin", nil)
			}
			return storeErr
		}

		var originalErr error
		var committed bool
		defer func() {
			if !committed && tx != nil {
				if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
					r.logger.Debug("Failed to rollback transaction in WithTransaction",
						"rollback_error", rollbackErr,
						"original_error", originalErr)
				}
			}
		}()

		// Clone the store with the transaction as the query target
		txStore := &SQLiteStore{
			conn:        r.conn,
			q:           tx,
			dbService:   r.dbService,
			retryConfig: r.retryConfig,
			logger:      r.logger,
		}

		if err := fn(txStore); err != nil {
			// The function should already return proper store errors
			originalErr = err
			r.logger.Debug("Transaction function failed", "error", err)
			return err
		}

		if err := tx.Commit(); err != nil {
			originalErr = err
			storeErr := storeerrors.NewStoreError("WithTransaction.Commit", err, r.classifyError(err))
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error committing transaction", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "WithTransaction.Commit", nil)
			}
			return storeErr
		}
		committed = true

		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "WithTransaction", time.Since(start), nil)
	}

	return err
}
