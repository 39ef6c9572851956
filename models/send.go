// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/btcsuite/btcd/btcutil"

// SendItem is a single recipient of a payment.
type SendItem struct {
	Address string         `json:"address"`
	Amount  btcutil.Amount `json:"amount"`
	Memo    string         `json:"memo,omitempty"`
}

// SendJob is a set of recipients submitted to the engine atomically.
type SendJob struct {
	Items []SendItem `json:"items"`
}

// Total returns the sum of all item amounts.
func (j SendJob) Total() btcutil.Amount {
	var total btcutil.Amount
	for _, it := range j.Items {
		total += it.Amount
	}
	return total
}

// SendProgress reports how far the engine got building a payment.
//
// On completion exactly one of TxID and Error is set.
type SendProgress struct {
	SendID     int64  `json:"send_id"`
	InProgress bool   `json:"in_progress"`
	Completed  int64  `json:"completed"`
	Total      int64  `json:"total"`
	ETASeconds int64  `json:"eta_seconds"`
	TxID       string `json:"txid,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Done reports whether the send reached a terminal outcome.
func (p SendProgress) Done() bool {
	return p.TxID != "" || p.Error != ""
}
