package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/migrations"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps *sql.DB with the error classifier and logger shared by all
// repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

const (
	maxRetries   = 3
	retryBackoff = 50 * time.Millisecond
)

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		db.logger.Info().Ints64("versions", applied).Msg("schema migrated")
	}
	return nil
}

// execWithRetry runs a DML statement, retrying while the classifier reports
// the failure as transient (for example SQLITE_BUSY).
func (db *DB) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res sql.Result
		err error
	)
	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err = db.ExecContext(ctx, query, args...)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return res, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}
	}

	return res, err
}
