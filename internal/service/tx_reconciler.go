// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/btcsuite/btcd/btcutil"
)

// memoPartPattern matches a memo split across outputs: "(i/n)" followed by
// the part's text, which may span lines.
var memoPartPattern = regexp.MustCompile(`^\((\d+)/(\d+)\)([\s\S]*)$`)

// TxReconciler collapses raw per-output ledger entries into logical
// transactions. It holds no state; the same input always yields the same
// output.
type TxReconciler struct{}

func NewTxReconciler() *TxReconciler {
	return &TxReconciler{}
}

type txGroup struct {
	first   models.RawLedgerEntry
	entries []models.RawLedgerEntry
}

// Reconcile groups entries by (txid, direction), merges outputs to the same
// counterparty within each group and orders the result by ascending
// confirmations. Sends with a negative amount and no outputs are the engine's
// rendering of self-sends and are dropped.
func (r *TxReconciler) Reconcile(entries []models.RawLedgerEntry, latestBlockHeight int64) []models.LogicalTransaction {
	var order []string
	groups := make(map[string]*txGroup)

	for _, e := range entries {
		if isSelfSendNoise(e) {
			continue
		}

		key := e.TxID + "\x00" + string(e.Direction)
		g, ok := groups[key]
		if !ok {
			g = &txGroup{first: e}
			groups[key] = g
			order = append(order, key)
		}
		g.entries = append(g.entries, e)
	}

	txs := make([]models.LogicalTransaction, 0, len(order))
	for _, key := range order {
		txs = append(txs, buildTransaction(groups[key], latestBlockHeight))
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Confirmations < txs[j].Confirmations
	})

	return txs
}

func isSelfSendNoise(e models.RawLedgerEntry) bool {
	return e.Direction == models.DirectionSent && e.Amount < 0 && e.NoDetails
}

func buildTransaction(g *txGroup, latestBlockHeight int64) models.LogicalTransaction {
	details := combineDetails(g.entries)

	var total btcutil.Amount
	for _, d := range details {
		total += d.Amount
	}

	tx := models.LogicalTransaction{
		TxID:          g.first.TxID,
		Direction:     g.first.Direction,
		Amount:        total,
		Confirmations: confirmations(g.first, latestBlockHeight),
		Time:          g.first.Time,
		ZecPrice:      g.first.ZecPrice,
		Details:       details,
	}
	if len(details) > 0 {
		tx.Address = details[0].Address
	}

	return tx
}

func confirmations(e models.RawLedgerEntry, latestBlockHeight int64) int64 {
	if e.Unconfirmed {
		return 0
	}
	return max(0, latestBlockHeight-e.BlockHeight+1)
}

// combineDetails merges entries sharing a counterparty address, summing
// amounts and reassembling split memos. Address groups keep arrival order.
func combineDetails(entries []models.RawLedgerEntry) []models.TxDetail {
	var order []string
	byAddress := make(map[string][]models.RawLedgerEntry)

	for _, e := range entries {
		if _, ok := byAddress[e.CounterpartyAddress]; !ok {
			order = append(order, e.CounterpartyAddress)
		}
		byAddress[e.CounterpartyAddress] = append(byAddress[e.CounterpartyAddress], e)
	}

	details := make([]models.TxDetail, 0, len(order))
	for _, addr := range order {
		group := byAddress[addr]

		var amount btcutil.Amount
		memos := make([]string, 0, len(group))
		for _, e := range group {
			amount += e.Amount
			if e.Memo != "" {
				memos = append(memos, e.Memo)
			}
		}

		memo, mixed := mergeMemos(memos)
		details = append(details, models.TxDetail{
			Address:   addr,
			Amount:    amount,
			Memo:      memo,
			MixedMemo: mixed,
		})
	}

	return details
}

type memoPart struct {
	num  int
	text string
}

// mergeMemos concatenates memo parts. Marked parts are ordered by their
// index; if marked and unmarked parts are both present every memo is kept
// verbatim in arrival order and mixed is true.
func mergeMemos(memos []string) (merged string, mixed bool) {
	if len(memos) == 0 {
		return "", false
	}

	parts := make([]memoPart, 0, len(memos))
	var marked, unmarked int
	for _, m := range memos {
		if p, ok := parseMemoPart(m); ok {
			parts = append(parts, p)
			marked++
			continue
		}
		parts = append(parts, memoPart{text: m})
		unmarked++
	}

	if marked > 0 && unmarked > 0 {
		return strings.Join(memos, ""), true
	}

	slices.SortStableFunc(parts, func(a, b memoPart) int {
		return a.num - b.num
	})

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.text)
	}
	return sb.String(), false
}

// parseMemoPart reports whether memo carries a valid "(i/n)" marker with
// 1 <= i <= n. Anything else is opaque text.
func parseMemoPart(memo string) (memoPart, bool) {
	m := memoPartPattern.FindStringSubmatch(memo)
	if m == nil {
		return memoPart{}, false
	}

	num, err := strconv.Atoi(m[1])
	if err != nil {
		return memoPart{}, false
	}
	total, err := strconv.Atoi(m[2])
	if err != nil {
		return memoPart{}, false
	}
	if num < 1 || num > total {
		return memoPart{}, false
	}

	return memoPart{num: num, text: m[3]}, true
}
