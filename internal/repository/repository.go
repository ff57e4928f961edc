package repository

import (
	"context"
	"database/sql"

	"execmode/internal/database"
	storeerrors "execmode/internal/infrastructure/errors"
	"execmode/internal/infrastructure/logging"
)

// dbtx is the subset of database/sql operations shared by *sql.DB and
// *sql.Tx, allowing the same query code to run inside and outside a
// transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	conn        *sql.DB
	q           dbtx
	dbService   database.Service
	retryConfig *storeerrors.RetryConfig
	logger      logging.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(dbService database.Service, logger logging.Logger) *SQLiteStore {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	db := dbService.DB()
	return &SQLiteStore{
		conn:        db,
		q:           db,
		dbService:   dbService,
		retryConfig: storeerrors.DefaultRetryConfig(),
		logger:      logger,
	}
}

// NewSQLiteStoreWithConfig creates a new SQLite store instance with custom
// retry configuration.
func NewSQLiteStoreWithConfig(dbService database.Service, retryConfig *storeerrors.RetryConfig, logger logging.Logger) *SQLiteStore {
	if retryConfig == nil {
		retryConfig = storeerrors.DefaultRetryConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	db := dbService.DB()
	return &SQLiteStore{
		conn:        db,
		q:           db,
		dbService:   dbService,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

// classifyError maps a raw database error to a store error code.
func (r *SQLiteStore) classifyError(err error) storeerrors.ErrorCode {
	return storeerrors.ClassifyError(err)
}
