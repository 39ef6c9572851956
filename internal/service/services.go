package service

import (
	"fmt"

	"github.com/MKhiriev/go-lite-wallet/internal/config"
	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/store"
	"github.com/MKhiriev/go-lite-wallet/models"
)

// Services groups the wallet services handed to the runtime and the local API.
type Services struct {
	State           *WalletState
	SyncCoordinator SyncCoordinator
	SendTracker     SendTracker
	WalletLifecycle WalletLifecycle
	WalletService   WalletService
	AddressBook     AddressBookService
	Settings        SettingsService
	AppInfoService  AppInfoService
}

// NewServices wires every service around one engine gateway and one
// published state.
func NewServices(
	eng Engine,
	lifecycle engine.Lifecycle,
	storages *store.Storages,
	cfg config.ClientConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(build, cfg.App.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("create app info service: %w", err)
	}

	state := NewWalletState()
	coordinator := NewSyncCoordinator(eng, state, NewTxReconciler(), SyncCoordinatorConfig{
		RefreshInterval:      cfg.Workers.RefreshInterval,
		ChangeDetectInterval: cfg.Workers.ChangeDetectInterval,
		SyncPollInterval:     cfg.Workers.SyncPollInterval,
		SyncRetryBudget:      cfg.Workers.SyncRetryBudget,
	}, logger.GetChildLogger())

	return &Services{
		State:           state,
		SyncCoordinator: coordinator,
		SendTracker: NewSendTracker(eng, coordinator, state, SendTrackerConfig{
			PollInterval: cfg.Workers.SendPollInterval,
		}, logger),
		WalletLifecycle: NewWalletLifecycle(lifecycle, eng, state, cfg.Workers.SyncPollInterval, logger),
		WalletService:   NewWalletService(eng, state, logger),
		AddressBook:     NewAddressBookService(storages.AddressBookRepository, logger),
		Settings:        NewSettingsService(storages.SettingsRepository, logger),
		AppInfoService:  appInfo,
	}, nil
}
