// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/btcsuite/btcd/btcutil"

// Currency names reported for the supported chains.
const (
	CurrencyMainnet = "ZEC"
	CurrencyTestnet = "TAZ"
)

// WalletInfo describes the engine, the chain tip it sees and the wallet's
// own synchronization and encryption state.
type WalletInfo struct {
	ChainName          string `json:"chain_name"`
	Testnet            bool   `json:"testnet"`
	LatestBlockHeight  int64  `json:"latest_block_height"`
	WalletSyncedHeight int64  `json:"wallet_synced_height"`
	Version            string `json:"version"`
	ZcashdVersion      string `json:"zcashd_version"`
	Encrypted          bool   `json:"encrypted"`
	Locked             bool   `json:"locked"`
	CurrencyName       string `json:"currency_name"`

	// ZecPrice is nil when the update carries no price.
	ZecPrice *float64 `json:"zec_price,omitempty"`
}

// Balance aggregates the wallet's per-pool totals.
type Balance struct {
	Transparent       btcutil.Amount `json:"transparent"`
	Orchard           btcutil.Amount `json:"orchard"`
	Sapling           btcutil.Amount `json:"sapling"`
	VerifiedSapling   btcutil.Amount `json:"verified_sapling"`
	UnverifiedSapling btcutil.Amount `json:"unverified_sapling"`
	SpendableSapling  btcutil.Amount `json:"spendable_sapling"`
	Total             btcutil.Amount `json:"total"`
}

// AddressBalance is the balance held by a single wallet address.
type AddressBalance struct {
	Address         string         `json:"address"`
	Balance         btcutil.Amount `json:"balance"`
	ContainsPending bool           `json:"contains_pending"`
}

// AddressType is the pool an address receives into.
type AddressType string

const (
	AddressTypeTransparent AddressType = "transparent"
	AddressTypeSapling     AddressType = "sapling"
	AddressTypeUnified     AddressType = "unified"
)

// AddressDetail is one address known to the wallet, with or without balance.
type AddressDetail struct {
	Address string      `json:"address"`
	Type    AddressType `json:"type"`
}

// Wallet option names understood by the engine.
const (
	OptionDownloadMemos       = "download_memos"
	OptionSpamFilterThreshold = "spam_filter_threshold"
)

// WalletSettings holds engine-side wallet options.
type WalletSettings struct {
	DownloadMemos       string `json:"download_memos"`
	SpamFilterThreshold int64  `json:"spam_filter_threshold"`
}

// CoordinatorState is the state of the sync coordinator's state machine.
type CoordinatorState string

const (
	CoordinatorUnconfigured    CoordinatorState = "unconfigured"
	CoordinatorIdle            CoordinatorState = "idle"
	CoordinatorRefreshInFlight CoordinatorState = "refresh_in_flight"
	CoordinatorFullSyncPolling CoordinatorState = "full_sync_polling"
)

// WalletSnapshot is an immutable copy of everything published to the GUI.
type WalletSnapshot struct {
	Info                 WalletInfo           `json:"info"`
	Balance              Balance              `json:"balance"`
	AddressesWithBalance []AddressBalance     `json:"addresses_with_balance"`
	Addresses            []AddressDetail      `json:"addresses"`
	Transactions         []LogicalTransaction `json:"transactions"`
	ZecPrice             *float64             `json:"zec_price,omitempty"`
	Settings             WalletSettings       `json:"settings"`
	SyncStatus           SyncStatus           `json:"sync_status"`
	SendProgress         *SendProgress        `json:"send_progress,omitempty"`
	State                CoordinatorState     `json:"state"`
	LastError            string               `json:"last_error,omitempty"`
}
