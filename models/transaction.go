// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/btcsuite/btcd/btcutil"

// Direction tells whether funds left or entered the wallet.
type Direction string

const (
	DirectionSent    Direction = "sent"
	DirectionReceive Direction = "receive"
)

// RawLedgerEntry is one output-level record reported by the engine.
//
// A single logical payment may produce several entries, e.g. when a long memo
// was split across outputs to the same recipient.
type RawLedgerEntry struct {
	TxID      string    `json:"txid"`
	Direction Direction `json:"direction"`

	// CounterpartyAddress is empty for shielded outputs with no disclosed
	// recipient.
	CounterpartyAddress string         `json:"address,omitempty"`
	Amount              btcutil.Amount `json:"amount"`
	Memo                string         `json:"memo,omitempty"`
	BlockHeight         int64          `json:"block_height"`
	Unconfirmed         bool           `json:"unconfirmed"`
	Time                int64          `json:"time"`
	ZecPrice            *float64       `json:"zec_price,omitempty"`

	// NoDetails marks a sent record for which the engine reported no
	// outgoing outputs at all.
	NoDetails bool `json:"no_details,omitempty"`
}

// TxDetail is the reconciled view of all outputs of one transaction going to
// (or coming from) the same address.
type TxDetail struct {
	Address string         `json:"address"`
	Amount  btcutil.Amount `json:"amount"`
	Memo    string         `json:"memo,omitempty"`

	// MixedMemo is set when the memo was merged from both "(i/n)"-marked and
	// unmarked parts; the parts are kept in arrival order.
	MixedMemo bool `json:"mixed_memo,omitempty"`
}

// LogicalTransaction is the GUI-facing unit built from raw ledger entries.
type LogicalTransaction struct {
	TxID          string         `json:"txid"`
	Direction     Direction      `json:"direction"`
	Address       string         `json:"address"`
	Amount        btcutil.Amount `json:"amount"`
	Confirmations int64          `json:"confirmations"`
	Time          int64          `json:"time"`
	ZecPrice      *float64       `json:"zec_price,omitempty"`
	Details       []TxDetail     `json:"details"`
}
