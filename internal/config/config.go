// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// lite wallet coordinator. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds wallet-level settings: chain, lightwalletd server, logging
	// and restore parameters.
	App App `envPrefix:"APP_"`

	// Engine holds the address and timeout of the wallet engine bridge.
	Engine Engine `envPrefix:"ENGINE_"`

	// Storage holds configuration for the local SQLite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local API listen address and request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the refresh, change-detection and polling cadences.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds wallet-level configuration values.
type App struct {
	// ChainName selects the network whose wallet file is opened ("main" or "test").
	// Env: APP_CHAIN_NAME
	ChainName string `env:"CHAIN_NAME"`

	// ServerURI is the lightwalletd endpoint handed to the engine on
	// initialization. A value stored in the settings table takes precedence.
	// Env: APP_SERVER_URI
	ServerURI string `env:"SERVER_URI"`

	// LogPath is the log file location. Empty means next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// LogLevel is a zerolog level name (e.g. "info", "debug").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// RestoreSeed, when set and no wallet exists, restores the wallet from
	// this seed phrase instead of creating a new one.
	// Env: APP_RESTORE_SEED
	RestoreSeed string `env:"RESTORE_SEED"`

	// RestoreBirthday is the block height the restore scan starts at.
	// Env: APP_RESTORE_BIRTHDAY
	RestoreBirthday int64 `env:"RESTORE_BIRTHDAY"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Engine holds settings of the wallet engine bridge.
type Engine struct {
	// Address is the base URL of the engine bridge (e.g. "http://127.0.0.1:9067").
	// Env: ENGINE_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single engine command.
	// Env: ENGINE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Server holds network and timeout settings for the local API.
type Server struct {
	// HTTPAddress is the TCP address on which the local API listens,
	// in "host:port" format (e.g. "127.0.0.1:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the SQLite file path (e.g. "litewallet.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds the cadences of the background workers.
type Workers struct {
	RefreshInterval      time.Duration `env:"REFRESH_INTERVAL"`
	ChangeDetectInterval time.Duration `env:"CHANGE_DETECT_INTERVAL"`
	SyncPollInterval     time.Duration `env:"SYNC_POLL_INTERVAL"`
	SyncRetryBudget      int           `env:"SYNC_RETRY_BUDGET"`
	SendPollInterval     time.Duration `env:"SEND_POLL_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. A field set by an earlier
// source is kept:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
