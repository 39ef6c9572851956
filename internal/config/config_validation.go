// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] is usable before
// defaults are applied. Only values that were explicitly set are checked.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.ChainName != "" && !isKnownChain(cfg.App.ChainName) {
		return ErrInvalidAppConfigs
	}
	if cfg.Workers.SyncRetryBudget < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if !isHTTPURL(cfg.Engine.Address) || cfg.Engine.RequestTimeout <= 0 {
		return ErrInvalidEngineConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.RefreshInterval <= 0 || cfg.Workers.ChangeDetectInterval <= 0 ||
		cfg.Workers.SyncPollInterval <= 0 || cfg.Workers.SendPollInterval <= 0 ||
		cfg.Workers.SyncRetryBudget <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if !isKnownChain(cfg.App.ChainName) || !isHTTPURL(cfg.App.ServerURI) {
		return ErrInvalidAppConfigs
	}

	return nil
}

func isKnownChain(name string) bool {
	return name == "main" || name == "test"
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
