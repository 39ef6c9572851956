package service

import (
	"slices"
	"sync"

	"github.com/MKhiriev/go-lite-wallet/models"
)

// WalletState is the in-memory [Publisher] read by the local API. Readers get
// copies; published slices are replaced, never mutated in place.
type WalletState struct {
	mu   sync.RWMutex
	snap models.WalletSnapshot
}

func NewWalletState() *WalletState {
	return &WalletState{snap: models.WalletSnapshot{State: models.CoordinatorUnconfigured}}
}

// SetInfo publishes info. A nil price in info keeps the last known price.
func (s *WalletState) SetInfo(info models.WalletInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info.ZecPrice == nil {
		info.ZecPrice = s.snap.ZecPrice
	} else {
		s.snap.ZecPrice = copyPrice(info.ZecPrice)
	}
	s.snap.Info = info
}

func (s *WalletState) SetBalance(balance models.Balance) {
	s.mu.Lock()
	s.snap.Balance = balance
	s.mu.Unlock()
}

func (s *WalletState) SetAddressesWithBalance(addresses []models.AddressBalance) {
	s.mu.Lock()
	s.snap.AddressesWithBalance = slices.Clone(addresses)
	s.mu.Unlock()
}

func (s *WalletState) SetAllAddresses(addresses []models.AddressDetail) {
	s.mu.Lock()
	s.snap.Addresses = slices.Clone(addresses)
	s.mu.Unlock()
}

func (s *WalletState) SetTransactions(txs []models.LogicalTransaction) {
	s.mu.Lock()
	s.snap.Transactions = slices.Clone(txs)
	s.mu.Unlock()
}

func (s *WalletState) SetZecPrice(price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.ZecPrice = &price
	s.snap.Info.ZecPrice = copyPrice(&price)
}

func (s *WalletState) SetWalletSettings(settings models.WalletSettings) {
	s.mu.Lock()
	s.snap.Settings = settings
	s.mu.Unlock()
}

func (s *WalletState) SetSyncStatus(status models.SyncStatus) {
	s.mu.Lock()
	s.snap.SyncStatus = status
	s.mu.Unlock()
}

// SetSendProgress publishes the progress of the current send; nil clears it.
func (s *WalletState) SetSendProgress(progress *models.SendProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if progress == nil {
		s.snap.SendProgress = nil
		return
	}
	p := *progress
	s.snap.SendProgress = &p
}

func (s *WalletState) SetLastError(msg string) {
	s.mu.Lock()
	s.snap.LastError = msg
	s.mu.Unlock()
}

func (s *WalletState) SetCoordinatorState(state models.CoordinatorState) {
	s.mu.Lock()
	s.snap.State = state
	s.mu.Unlock()
}

// Snapshot returns a copy of everything published so far.
func (s *WalletState) Snapshot() models.WalletSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.AddressesWithBalance = slices.Clone(s.snap.AddressesWithBalance)
	snap.Addresses = slices.Clone(s.snap.Addresses)
	snap.Transactions = slices.Clone(s.snap.Transactions)
	snap.ZecPrice = copyPrice(s.snap.ZecPrice)
	snap.Info.ZecPrice = copyPrice(s.snap.Info.ZecPrice)
	if s.snap.SendProgress != nil {
		p := *s.snap.SendProgress
		snap.SendProgress = &p
	}
	return snap
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
