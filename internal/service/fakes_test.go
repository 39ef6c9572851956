package service

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/models"
)

// fakeEngine is a scripted [Engine]. Zero-valued hooks return the static
// fields; every call is counted by command name.
type fakeEngine struct {
	mu    sync.Mutex
	calls map[string]int

	info     engine.Info
	infoErr  error
	enc      engine.EncryptionStatus
	height   int64
	heightFn func(call int) (int64, error)

	balances engine.Balances
	notes    engine.Notes
	ledger   []models.RawLedgerEntry
	listErr  error

	syncErr      error
	syncStatusFn func(call int) (models.SyncStatus, error)
	rescanErr    error

	lastTxID    string
	lastTxIDErr error
	price       *float64

	options   map[string]string
	optionErr map[string]error
	setOpts   []string

	sendErr        error
	sent           [][]models.SendItem
	sendProgressFn func(call int) (engine.SendProgress, error)

	saveErr    error
	opErr      error
	seed       engine.Seed
	keys       []engine.ExportedKey
	newAddress string
	fee        btcutil.Amount
	importRes  string
	imported   []int64

	// block, when set, is waited on inside Sync.
	block chan struct{}
	// lastTxIDBlock, when set, is waited on inside LastTxID.
	lastTxIDBlock chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		calls:     make(map[string]int),
		options:   make(map[string]string),
		optionErr: make(map[string]error),
	}
}

func (f *fakeEngine) hit(cmd string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[cmd]++
	return f.calls[cmd]
}

func (f *fakeEngine) count(cmd string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[cmd]
}

func (f *fakeEngine) Info(ctx context.Context) (engine.Info, error) {
	f.hit(engine.CmdInfo)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.info, f.infoErr
}

func (f *fakeEngine) setLatest(height int64) {
	f.mu.Lock()
	f.info.LatestBlockHeight = height
	f.mu.Unlock()
}

func (f *fakeEngine) EncryptionStatus(ctx context.Context) (engine.EncryptionStatus, error) {
	f.hit(engine.CmdEncryptionStatus)
	return f.enc, nil
}

func (f *fakeEngine) Balance(ctx context.Context) (engine.Balances, error) {
	f.hit(engine.CmdBalance)
	return f.balances, nil
}

func (f *fakeEngine) Notes(ctx context.Context) (engine.Notes, error) {
	f.hit(engine.CmdNotes)
	return f.notes, nil
}

func (f *fakeEngine) List(ctx context.Context) ([]models.RawLedgerEntry, error) {
	f.hit(engine.CmdList)
	return f.ledger, f.listErr
}

func (f *fakeEngine) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	n := f.hit(engine.CmdSyncStatus)
	if f.syncStatusFn != nil {
		return f.syncStatusFn(n)
	}
	return models.SyncStatus{}, nil
}

func (f *fakeEngine) Sync(ctx context.Context) error {
	f.hit(engine.CmdSync)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.syncErr
}

func (f *fakeEngine) Rescan(ctx context.Context) error {
	f.hit(engine.CmdRescan)
	return f.rescanErr
}

func (f *fakeEngine) SendProgress(ctx context.Context) (engine.SendProgress, error) {
	n := f.hit(engine.CmdSendProgress)
	if f.sendProgressFn != nil {
		return f.sendProgressFn(n)
	}
	return engine.SendProgress{}, nil
}

func (f *fakeEngine) Send(ctx context.Context, items []models.SendItem) error {
	f.hit(engine.CmdSend)
	f.mu.Lock()
	f.sent = append(f.sent, items)
	f.mu.Unlock()
	return f.sendErr
}

func (f *fakeEngine) LastTxID(ctx context.Context) (string, error) {
	f.hit(engine.CmdLastTxID)
	if f.lastTxIDBlock != nil {
		select {
		case <-f.lastTxIDBlock:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastTxID, f.lastTxIDErr
}

func (f *fakeEngine) setLastTxID(txid string) {
	f.mu.Lock()
	f.lastTxID = txid
	f.mu.Unlock()
}

func (f *fakeEngine) Height(ctx context.Context) (int64, error) {
	n := f.hit(engine.CmdHeight)
	if f.heightFn != nil {
		return f.heightFn(n)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height, nil
}

func (f *fakeEngine) Save(ctx context.Context) error {
	f.hit(engine.CmdSave)
	return f.saveErr
}

func (f *fakeEngine) Encrypt(ctx context.Context, password string) error {
	f.hit(engine.CmdEncrypt)
	return f.opErr
}

func (f *fakeEngine) Decrypt(ctx context.Context, password string) error {
	f.hit(engine.CmdDecrypt)
	return f.opErr
}

func (f *fakeEngine) Lock(ctx context.Context) error {
	f.hit(engine.CmdLock)
	return f.opErr
}

func (f *fakeEngine) Unlock(ctx context.Context, password string) error {
	f.hit(engine.CmdUnlock)
	return f.opErr
}

func (f *fakeEngine) Export(ctx context.Context, address string) ([]engine.ExportedKey, error) {
	f.hit(engine.CmdExport)
	return f.keys, f.opErr
}

func (f *fakeEngine) NewAddress(ctx context.Context, addrType models.AddressType) (string, error) {
	f.hit(engine.CmdNew)
	return f.newAddress, f.opErr
}

func (f *fakeEngine) Seed(ctx context.Context) (engine.Seed, error) {
	f.hit(engine.CmdSeed)
	return f.seed, f.opErr
}

func (f *fakeEngine) GetOption(ctx context.Context, name string) (string, error) {
	f.hit(engine.CmdGetOption)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.optionErr[name]; err != nil {
		return "", err
	}
	return f.options[name], nil
}

func (f *fakeEngine) SetOption(ctx context.Context, name, value string) error {
	f.hit(engine.CmdSetOption)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setOpts = append(f.setOpts, name+"="+value)
	f.options[name] = value
	return nil
}

func (f *fakeEngine) ZecPrice(ctx context.Context) (*float64, error) {
	f.hit(engine.CmdZecPrice)
	return f.price, nil
}

func (f *fakeEngine) DefaultFee(ctx context.Context) (btcutil.Amount, error) {
	f.hit(engine.CmdDefaultFee)
	return f.fee, f.opErr
}

func (f *fakeEngine) Import(ctx context.Context, key string, birthday int64) (string, error) {
	f.hit(engine.CmdImport)
	f.mu.Lock()
	f.imported = append(f.imported, birthday)
	f.mu.Unlock()
	return f.importRes, f.opErr
}

func price(v float64) *float64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func btcAmount(v int64) btcutil.Amount {
	return btcutil.Amount(v)
}
