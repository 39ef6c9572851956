// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is a point-in-time view of the engine's background scanning run.
//
// The engine scans in three parallel phases (block sync, trial decryption and
// transaction scan), each reported as a block counter against TotalBlocks.
// Large ranges are split into batches, reported via BatchNum/BatchTotal.
type SyncStatus struct {
	// SyncID identifies a sync run. It strictly increases across runs.
	SyncID     int64 `json:"sync_id"`
	InProgress bool  `json:"in_progress"`

	SyncedBlocks           int64 `json:"synced_blocks"`
	TrialDecryptionsBlocks int64 `json:"trial_decryptions_blocks"`
	TxnScanBlocks          int64 `json:"txn_scan_blocks"`
	TotalBlocks            int64 `json:"total_blocks"`

	BatchNum   int64 `json:"batch_num"`
	BatchTotal int64 `json:"batch_total"`

	// LastError is set by the engine when the run ended with an error.
	LastError *string `json:"last_error,omitempty"`
}

// IsNewerThan reports whether s belongs to a sync run started after the run
// identified by prevSyncID.
func (s SyncStatus) IsNewerThan(prevSyncID int64) bool {
	return s.SyncID > prevSyncID
}

// Finished reports whether s describes a completed run newer than prevSyncID.
func (s SyncStatus) Finished(prevSyncID int64) bool {
	return s.IsNewerThan(prevSyncID) && !s.InProgress
}

// HasError reports whether the engine recorded an error for this run.
func (s SyncStatus) HasError() bool {
	return s.LastError != nil && *s.LastError != ""
}

// BatchProgress returns the completion percentage of the current batch.
func (s SyncStatus) BatchProgress() float64 {
	if s.TotalBlocks <= 0 {
		return 0
	}
	return s.phaseAverage() * 100 / float64(s.TotalBlocks)
}

// Progress returns the overall completion percentage across all batches.
func (s SyncStatus) Progress() float64 {
	progress := s.BatchProgress()
	if s.BatchTotal <= 0 {
		return progress
	}

	base := float64(s.BatchNum) * 100 / float64(s.BatchTotal)
	return base + progress/float64(s.BatchTotal)
}

func (s SyncStatus) phaseAverage() float64 {
	return float64(s.SyncedBlocks+s.TrialDecryptionsBlocks+s.TxnScanBlocks) / 3
}
