package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/store"
	"github.com/MKhiriev/go-lite-wallet/models"
)

type addressBookService struct {
	repo   store.AddressBookRepository
	logger *logger.Logger
}

func NewAddressBookService(repo store.AddressBookRepository, logger *logger.Logger) AddressBookService {
	return &addressBookService{
		repo:   repo,
		logger: logger,
	}
}

func (s *addressBookService) List(ctx context.Context) ([]models.AddressBookEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list address book: %w", err)
	}
	return entries, nil
}

// Add stores entry under its label, replacing any previous address.
func (s *addressBookService) Add(ctx context.Context, entry models.AddressBookEntry) error {
	entry.Label = strings.TrimSpace(entry.Label)
	entry.Address = strings.TrimSpace(entry.Address)

	if entry.Label == "" {
		return ErrInvalidLabel
	}
	if entry.Address == "" {
		return ErrInvalidAddress
	}

	if err := s.repo.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("save address book entry: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*addressBookService.Add").Str("label", entry.Label).Msg("address book entry saved")
	return nil
}

func (s *addressBookService) Remove(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrInvalidLabel
	}

	if err := s.repo.DeleteEntry(ctx, label); err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("delete address book entry: %w", err)
	}

	return nil
}
