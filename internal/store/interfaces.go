package store

import (
	"context"

	"github.com/MKhiriev/go-lite-wallet/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AddressBookRepository persists user-assigned labels for counterparty addresses.
type AddressBookRepository interface {
	ListEntries(ctx context.Context) ([]models.AddressBookEntry, error)
	SaveEntry(ctx context.Context, entry models.AddressBookEntry) error
	DeleteEntry(ctx context.Context, label string) error
}

// SettingsRepository is a small key/value store for user settings such as
// the selected lightwalletd server.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
