package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lite-wallet/internal/config"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
)

// Storages groups the local repositories handed to the service layer.
type Storages struct {
	AddressBookRepository AddressBookRepository
	SettingsRepository    SettingsRepository

	db *DB
}

// NewStorages opens the SQLite database at cfg.DB.DSN, creating the file if
// needed, applies migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		AddressBookRepository: NewAddressBookRepository(db, logger),
		SettingsRepository:    NewSettingsRepository(db, logger),
		db:                    db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
