package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to fields no source has set.
const (
	DefaultChainName        = "main"
	DefaultServerURI        = "https://lwdv3.zecwallet.co"
	DefaultEngineAddress    = "http://127.0.0.1:9067"
	DefaultEngineTimeout    = 2 * time.Minute
	DefaultHTTPAddress      = "127.0.0.1:8080"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultDSN              = "litewallet.db"
	DefaultLogLevel         = "info"
	DefaultRefreshInterval  = 3 * time.Minute
	DefaultChangeInterval   = 3 * time.Second
	DefaultSyncPollInterval = time.Second
	DefaultSyncRetryBudget  = 30
	DefaultSendPollInterval = 2 * time.Second
)

// ClientApp holds wallet-level settings derived from the structured config.
type ClientApp struct {
	// ChainName is the network whose wallet is opened.
	ChainName string
	// ServerURI is the fallback lightwalletd endpoint.
	ServerURI string
	// LogPath is the log file path; empty means next to the executable.
	LogPath string
	// LogLevel is the zerolog level name.
	LogLevel string
	// RestoreSeed restores a wallet when none exists.
	RestoreSeed string
	// RestoreBirthday is the restore scan start height.
	RestoreBirthday int64
	// Version is reported by the local API.
	Version string
}

// ClientEngine holds the engine bridge settings.
type ClientEngine struct {
	// Address is the engine bridge base URL.
	Address string
	// RequestTimeout is the default timeout for a single engine command.
	RequestTimeout time.Duration
}

// ClientServer holds the local API settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	RefreshInterval      time.Duration
	ChangeDetectInterval time.Duration
	SyncPollInterval     time.Duration
	SyncRetryBudget      int
	SendPollInterval     time.Duration
}

// ClientConfig is the top-level runtime configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Engine  ClientEngine
	Server  ClientServer
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client config view from the
// merged structured configuration, filling unset fields with defaults.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			ChainName:       orDefault(cfg.App.ChainName, DefaultChainName),
			ServerURI:       orDefault(cfg.App.ServerURI, DefaultServerURI),
			LogPath:         cfg.App.LogPath,
			LogLevel:        orDefault(cfg.App.LogLevel, DefaultLogLevel),
			RestoreSeed:     cfg.App.RestoreSeed,
			RestoreBirthday: cfg.App.RestoreBirthday,
			Version:         cfg.App.Version,
		},
		Engine: ClientEngine{
			Address:        orDefault(cfg.Engine.Address, DefaultEngineAddress),
			RequestTimeout: orDefault(cfg.Engine.RequestTimeout, DefaultEngineTimeout),
		},
		Server: ClientServer{
			HTTPAddress:    orDefault(cfg.Server.HTTPAddress, DefaultHTTPAddress),
			RequestTimeout: orDefault(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: orDefault(cfg.Storage.DB.DSN, DefaultDSN),
			},
		},
		Workers: ClientWorkers{
			RefreshInterval:      orDefault(cfg.Workers.RefreshInterval, DefaultRefreshInterval),
			ChangeDetectInterval: orDefault(cfg.Workers.ChangeDetectInterval, DefaultChangeInterval),
			SyncPollInterval:     orDefault(cfg.Workers.SyncPollInterval, DefaultSyncPollInterval),
			SyncRetryBudget:      orDefault(cfg.Workers.SyncRetryBudget, DefaultSyncRetryBudget),
			SendPollInterval:     orDefault(cfg.Workers.SendPollInterval, DefaultSendPollInterval),
		},
	}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
