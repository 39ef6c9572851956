package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
)

// addressBookRepository is the SQLite-backed implementation of
// [AddressBookRepository]. Labels are unique; saving an existing label
// replaces its address.
type addressBookRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAddressBookRepository constructs an [AddressBookRepository] backed by db.
func NewAddressBookRepository(db *DB, logger *logger.Logger) AddressBookRepository {
	logger.Debug().Msg("creating address book repository")
	return &addressBookRepository{
		db:     db,
		logger: logger,
	}
}

// ListEntries returns all entries ordered by label.
func (r *addressBookRepository) ListEntries(ctx context.Context) ([]models.AddressBookEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery()
	if err != nil {
		log.Err(err).Str("func", "*addressBookRepository.ListEntries").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*addressBookRepository.ListEntries").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AddressBookEntry, 0)
	for rows.Next() {
		var entry models.AddressBookEntry
		if err := rows.Scan(&entry.Label, &entry.Address); err != nil {
			log.Err(err).Str("func", "*addressBookRepository.ListEntries").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*addressBookRepository.ListEntries").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// SaveEntry inserts entry or replaces the address stored under its label.
func (r *addressBookRepository) SaveEntry(ctx context.Context, entry models.AddressBookEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveEntryQuery(entry.Label, entry.Address)
	if err != nil {
		log.Err(err).Str("func", "*addressBookRepository.SaveEntry").Msg("error building query")
		return err
	}

	if _, err := r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*addressBookRepository.SaveEntry").Str("label", entry.Label).Msg("error saving entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteEntry removes the entry with the given label. It returns
// [ErrEntryNotFound] when no row matched.
func (r *addressBookRepository) DeleteEntry(ctx context.Context, label string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(label)
	if err != nil {
		log.Err(err).Str("func", "*addressBookRepository.DeleteEntry").Msg("error building query")
		return err
	}

	res, err := r.db.execWithRetry(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*addressBookRepository.DeleteEntry").Str("label", label).Msg("error deleting entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
