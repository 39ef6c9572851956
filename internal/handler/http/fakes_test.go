package http

import (
	"context"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/service"
	"github.com/MKhiriev/go-lite-wallet/models"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

type fakeCoordinator struct {
	service.SyncCoordinator

	refreshErr  error
	refreshFull []bool
	endpoint    string
	height      int64
	txid        string
}

func (f *fakeCoordinator) Refresh(_ context.Context, full bool) error {
	f.refreshFull = append(f.refreshFull, full)
	return f.refreshErr
}

func (f *fakeCoordinator) Endpoint() string { return f.endpoint }

func (f *fakeCoordinator) LastObserved() (int64, string) { return f.height, f.txid }

type fakeLifecycle struct {
	service.WalletLifecycle

	rescanErr error
	rescans   int
}

func (f *fakeLifecycle) Rescan(_ context.Context, _ func(models.SyncStatus)) error {
	f.rescans++
	return f.rescanErr
}

type fakeWalletService struct {
	err       error
	passwords []string
	locked    bool
	address   string
	seed      engine.Seed
	keys      map[string][2]string
	imported  []string
	fee       btcutil.Amount
	options   map[string]string
}

func (f *fakeWalletService) Encrypt(_ context.Context, password string) error {
	f.passwords = append(f.passwords, "encrypt:"+password)
	return f.err
}

func (f *fakeWalletService) Decrypt(_ context.Context, password string) error {
	f.passwords = append(f.passwords, "decrypt:"+password)
	return f.err
}

func (f *fakeWalletService) Lock(_ context.Context) error {
	f.locked = true
	return f.err
}

func (f *fakeWalletService) Unlock(_ context.Context, password string) error {
	f.passwords = append(f.passwords, "unlock:"+password)
	return f.err
}

func (f *fakeWalletService) NewAddress(_ context.Context, _ models.AddressType) (string, error) {
	return f.address, f.err
}

func (f *fakeWalletService) Seed(_ context.Context) (engine.Seed, error) {
	return f.seed, f.err
}

func (f *fakeWalletService) PrivateKey(_ context.Context, address string) (string, error) {
	k, ok := f.keys[address]
	if !ok {
		return "", service.ErrNoKeyExported
	}
	return k[0], nil
}

func (f *fakeWalletService) ViewingKey(_ context.Context, address string) (string, error) {
	k, ok := f.keys[address]
	if !ok {
		return "", service.ErrNoKeyExported
	}
	return k[1], nil
}

func (f *fakeWalletService) ImportKey(_ context.Context, key, birthday string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.imported = append(f.imported, key+"@"+birthday)
	return `{"address":"zs1imported"}`, nil
}

func (f *fakeWalletService) DefaultFee(_ context.Context) (btcutil.Amount, error) {
	return f.fee, f.err
}

func (f *fakeWalletService) SetWalletOption(_ context.Context, name, value string) error {
	if f.err != nil {
		return f.err
	}
	if f.options == nil {
		f.options = make(map[string]string)
	}
	f.options[name] = value
	return nil
}

type fakeAddressBook struct {
	entries []models.AddressBookEntry
	err     error
	removed []string
}

func (f *fakeAddressBook) List(_ context.Context) ([]models.AddressBookEntry, error) {
	return f.entries, f.err
}

func (f *fakeAddressBook) Add(_ context.Context, entry models.AddressBookEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAddressBook) Remove(_ context.Context, label string) error {
	f.removed = append(f.removed, label)
	return f.err
}

type fakeSettings struct {
	stored string
	err    error
}

func (f *fakeSettings) ServerURI(_ context.Context, fallback string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.stored == "" {
		return fallback, nil
	}
	return f.stored, nil
}

func (f *fakeSettings) SetServerURI(_ context.Context, uri string) error {
	if f.err != nil {
		return f.err
	}
	if uri == "" {
		return service.ErrInvalidServer
	}
	f.stored = uri
	return nil
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(m.version, "2026-10-01", "")
}

// sendEngine answers only the two commands the send tracker uses.
type sendEngine struct {
	service.Engine

	mu      sync.Mutex
	calls   int
	sendErr error
}

func (e *sendEngine) SendProgress(_ context.Context) (engine.SendProgress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.calls == 1 {
		return engine.SendProgress{ID: 1}, nil
	}
	txid := "tx-from-api"
	return engine.SendProgress{ID: 2, Progress: 1, Total: 1, TxID: &txid}, nil
}

func (e *sendEngine) Send(_ context.Context, _ []models.SendItem) error {
	return e.sendErr
}

// ─────────────────────────────────────────────
// Harness
// ─────────────────────────────────────────────

type testHarness struct {
	handler     *Handler
	state       *service.WalletState
	coordinator *fakeCoordinator
	lifecycle   *fakeLifecycle
	wallet      *fakeWalletService
	addressBook *fakeAddressBook
	settings    *fakeSettings
	sendEngine  *sendEngine
}

func newHarness() *testHarness {
	state := service.NewWalletState()
	h := &testHarness{
		state:       state,
		coordinator: &fakeCoordinator{endpoint: "https://lwdv3.zecwallet.co"},
		lifecycle:   &fakeLifecycle{},
		wallet:      &fakeWalletService{},
		addressBook: &fakeAddressBook{},
		settings:    &fakeSettings{},
		sendEngine:  &sendEngine{},
	}

	svcs := &service.Services{
		State:           state,
		SyncCoordinator: h.coordinator,
		SendTracker:     service.NewSendTracker(h.sendEngine, nil, state, service.SendTrackerConfig{PollInterval: time.Millisecond}, logger.Nop()),
		WalletLifecycle: h.lifecycle,
		WalletService:   h.wallet,
		AddressBook:     h.addressBook,
		Settings:        h.settings,
		AppInfoService:  &mockAppInfoService{version: "1.8.0"},
	}
	h.handler = NewHandler(svcs, logger.Nop())
	return h
}
