package service

import (
	"context"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/btcsuite/btcd/btcutil"
)

// Engine is the typed engine surface consumed by the services. It is
// satisfied by [*engine.Gateway].
type Engine interface {
	Info(ctx context.Context) (engine.Info, error)
	EncryptionStatus(ctx context.Context) (engine.EncryptionStatus, error)
	Balance(ctx context.Context) (engine.Balances, error)
	Notes(ctx context.Context) (engine.Notes, error)
	List(ctx context.Context) ([]models.RawLedgerEntry, error)
	SyncStatus(ctx context.Context) (models.SyncStatus, error)
	Sync(ctx context.Context) error
	Rescan(ctx context.Context) error
	SendProgress(ctx context.Context) (engine.SendProgress, error)
	Send(ctx context.Context, items []models.SendItem) error
	LastTxID(ctx context.Context) (string, error)
	Height(ctx context.Context) (int64, error)
	Save(ctx context.Context) error
	Encrypt(ctx context.Context, password string) error
	Decrypt(ctx context.Context, password string) error
	Lock(ctx context.Context) error
	Unlock(ctx context.Context, password string) error
	Export(ctx context.Context, address string) ([]engine.ExportedKey, error)
	NewAddress(ctx context.Context, addrType models.AddressType) (string, error)
	Seed(ctx context.Context) (engine.Seed, error)
	GetOption(ctx context.Context, name string) (string, error)
	SetOption(ctx context.Context, name, value string) error
	ZecPrice(ctx context.Context) (*float64, error)
	DefaultFee(ctx context.Context) (btcutil.Amount, error)
	Import(ctx context.Context, key string, birthday int64) (string, error)
}

// Publisher receives every piece of state the GUI displays. Setters are
// called only when a refresh produced new data.
type Publisher interface {
	SetInfo(info models.WalletInfo)
	SetBalance(balance models.Balance)
	SetAddressesWithBalance(addresses []models.AddressBalance)
	SetAllAddresses(addresses []models.AddressDetail)
	SetTransactions(txs []models.LogicalTransaction)
	SetZecPrice(price float64)
	SetWalletSettings(settings models.WalletSettings)
	SetSyncStatus(status models.SyncStatus)
	SetSendProgress(progress *models.SendProgress)
	SetLastError(msg string)
	SetCoordinatorState(state models.CoordinatorState)
}

// Refresher triggers a data refresh. It is implemented by [SyncCoordinator].
type Refresher interface {
	Refresh(ctx context.Context, full bool) error
}

// SyncCoordinator keeps the published wallet view consistent with the
// engine by polling it on two recurring ticks.
type SyncCoordinator interface {
	Refresher

	// Configure installs the recurring ticks and triggers an immediate full
	// refresh. Calling it again while configured is a no-op.
	Configure(ctx context.Context, endpoint string) error

	// DetectChangeTick refreshes wallet data if the engine's last txid
	// changed since the previous tick.
	DetectChangeTick(ctx context.Context) error

	// ClearTimers stops both ticks, waits for in-flight handlers and
	// returns the coordinator to the unconfigured state. It is idempotent.
	ClearTimers()

	State() models.CoordinatorState
	LastObserved() (height int64, txid string)
	Endpoint() string
}

// SendTracker turns a fire-and-forget engine send into an awaitable result.
type SendTracker interface {
	Start(ctx context.Context, job models.SendJob, onProgress func(models.SendProgress)) (*SendHandle, error)
	Send(ctx context.Context, job models.SendJob, onProgress func(models.SendProgress)) (string, error)
}

// WalletLifecycle opens, creates, restores and closes the engine's wallet
// and drives the initial sync that must finish before the coordinator runs.
type WalletLifecycle interface {
	Open(ctx context.Context, serverURI string) error
	Create(ctx context.Context, serverURI string) (engine.Seed, error)
	Restore(ctx context.Context, serverURI, seed string, birthday int64, overwrite bool) error
	Exists(ctx context.Context, chainName string) (bool, error)
	WaitForSync(ctx context.Context, onProgress func(models.SyncStatus)) error
	Rescan(ctx context.Context, onProgress func(models.SyncStatus)) error
	Close(ctx context.Context) error
}

// WalletService exposes user-initiated wallet operations.
type WalletService interface {
	Encrypt(ctx context.Context, password string) error
	Decrypt(ctx context.Context, password string) error
	Lock(ctx context.Context) error
	Unlock(ctx context.Context, password string) error
	NewAddress(ctx context.Context, addrType models.AddressType) (string, error)
	Seed(ctx context.Context) (engine.Seed, error)
	PrivateKey(ctx context.Context, address string) (string, error)
	ViewingKey(ctx context.Context, address string) (string, error)
	ImportKey(ctx context.Context, key, birthday string) (string, error)
	DefaultFee(ctx context.Context) (btcutil.Amount, error)
	SetWalletOption(ctx context.Context, name, value string) error
}

// AddressBookService manages user-assigned labels for addresses.
type AddressBookService interface {
	List(ctx context.Context) ([]models.AddressBookEntry, error)
	Add(ctx context.Context, entry models.AddressBookEntry) error
	Remove(ctx context.Context, label string) error
}

// SettingsService persists user preferences such as the server endpoint.
type SettingsService interface {
	ServerURI(ctx context.Context, fallback string) (string, error)
	SetServerURI(ctx context.Context, uri string) error
}

// AppInfoService reports the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
