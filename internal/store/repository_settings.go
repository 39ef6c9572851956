package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
)

type settingsRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSettingsRepository constructs a [SettingsRepository] backed by db.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetSetting returns the stored value, or [ErrSettingNotFound].
func (r *settingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSettingQuery(key)
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.GetSetting").Msg("error building query")
		return "", err
	}

	var value string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		log.Err(err).Str("func", "*settingsRepository.GetSetting").Str("key", key).Msg("error reading setting")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

// SetSetting upserts key.
func (r *settingsRepository) SetSetting(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetSettingQuery(key, value)
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.SetSetting").Msg("error building query")
		return err
	}

	if _, err := r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*settingsRepository.SetSetting").Str("key", key).Msg("error writing setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
