package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/btcsuite/btcd/btcutil"
)

// Gateway is the typed facade over an [Executor]. All calls are serialized:
// the engine is never entered by two goroutines at once.
type Gateway struct {
	exec   Executor
	mu     sync.Mutex
	logger *logger.Logger
}

// NewGateway wraps exec. A nil log discards output.
func NewGateway(exec Executor, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{exec: exec, logger: log}
}

// Execute runs a raw command and applies engine error detection to the
// result. Typed methods should be preferred.
func (g *Gateway) Execute(ctx context.Context, command, arg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &EngineError{Command: command, Err: err}
	}

	g.mu.Lock()
	result, err := g.exec.Execute(ctx, command, arg)
	g.mu.Unlock()

	if err != nil {
		g.logger.Debug().Str("command", command).Err(err).Msg("engine transport failure")
		return "", &EngineError{Command: command, Err: err}
	}
	if err = detectError(command, result); err != nil {
		g.logger.Debug().Str("command", command).Err(err).Msg("engine reported error")
		return "", err
	}

	return result, nil
}

func detectError(command, result string) error {
	trimmed := strings.TrimSpace(result)
	if len(trimmed) >= 5 && strings.EqualFold(trimmed[:5], "error") {
		return &EngineError{Command: command, Message: trimmed}
	}
	if errorFieldExempt[command] || !strings.HasPrefix(trimmed, "{") {
		return nil
	}

	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return nil
	}
	if msg := rawText(probe.Error); msg != "" {
		return &EngineError{Command: command, Message: msg}
	}
	return nil
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (g *Gateway) callJSON(ctx context.Context, command, arg string, dst any) error {
	result, err := g.Execute(ctx, command, arg)
	if err != nil {
		return err
	}
	if err = json.Unmarshal([]byte(result), dst); err != nil {
		return &EngineError{Command: command, Message: truncate(result), Err: fmt.Errorf("%w: %v", ErrMalformedResult, err)}
	}
	return nil
}

func (g *Gateway) callAck(ctx context.Context, command, arg string) error {
	_, err := g.Execute(ctx, command, arg)
	return err
}

func (g *Gateway) callSuccess(ctx context.Context, command, arg string) error {
	var res successResult
	if err := g.callJSON(ctx, command, arg, &res); err != nil {
		return err
	}
	if res.Result != "success" {
		return &EngineError{Command: command, Message: res.Result, Err: ErrOperationFailed}
	}
	return nil
}

func truncate(s string) string {
	const limit = 128
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// Info returns the engine and chain description.
func (g *Gateway) Info(ctx context.Context) (Info, error) {
	var info Info
	err := g.callJSON(ctx, CmdInfo, "", &info)
	return info, err
}

// EncryptionStatus returns the wallet encryption flags.
func (g *Gateway) EncryptionStatus(ctx context.Context) (EncryptionStatus, error) {
	var status EncryptionStatus
	err := g.callJSON(ctx, CmdEncryptionStatus, "", &status)
	return status, err
}

// Balance returns pool totals and per-address balances.
func (g *Gateway) Balance(ctx context.Context) (Balances, error) {
	var wire balancesWire
	if err := g.callJSON(ctx, CmdBalance, "", &wire); err != nil {
		return Balances{}, err
	}
	return wire.toBalances(), nil
}

// Notes returns pending notes and UTXOs.
func (g *Gateway) Notes(ctx context.Context) (Notes, error) {
	var notes Notes
	err := g.callJSON(ctx, CmdNotes, "", &notes)
	return notes, err
}

// List returns the wallet's raw ledger, one entry per output.
//
// A record carrying outgoing metadata is a send: each outgoing output becomes
// its own entry, and a send without outputs becomes one entry flagged
// NoDetails. Any other record is a receive.
func (g *Gateway) List(ctx context.Context) ([]models.RawLedgerEntry, error) {
	var items []listItem
	if err := g.callJSON(ctx, CmdList, "", &items); err != nil {
		return nil, err
	}

	entries := make([]models.RawLedgerEntry, 0, len(items))
	for _, it := range items {
		base := models.RawLedgerEntry{
			TxID:        it.TxID,
			BlockHeight: it.BlockHeight,
			Unconfirmed: it.Unconfirmed,
			Time:        it.Datetime,
			ZecPrice:    it.ZecPrice,
		}

		if it.OutgoingMetadata == nil {
			e := base
			e.Direction = models.DirectionReceive
			e.CounterpartyAddress = deref(it.Address)
			e.Amount = it.Amount
			e.Memo = deref(it.Memo)
			entries = append(entries, e)
			continue
		}

		if len(it.OutgoingMetadata) == 0 {
			e := base
			e.Direction = models.DirectionSent
			e.CounterpartyAddress = deref(it.Address)
			e.Amount = it.Amount
			e.Memo = deref(it.Memo)
			e.NoDetails = true
			entries = append(entries, e)
			continue
		}

		for _, o := range it.OutgoingMetadata {
			e := base
			e.Direction = models.DirectionSent
			e.CounterpartyAddress = o.Address
			e.Amount = o.Value
			e.Memo = deref(o.Memo)
			entries = append(entries, e)
		}
	}

	return entries, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SyncStatus returns the state of the current or last sync run.
func (g *Gateway) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus
	err := g.callJSON(ctx, CmdSyncStatus, "", &status)
	return status, err
}

// Sync starts a background sync.
func (g *Gateway) Sync(ctx context.Context) error {
	return g.callAck(ctx, CmdSync, "")
}

// Rescan starts a background rescan from the wallet birthday.
func (g *Gateway) Rescan(ctx context.Context) error {
	return g.callAck(ctx, CmdRescan, "")
}

// SendProgress returns the progress of the current or last send. Its Error
// field is the send's outcome, not a failure of this call.
func (g *Gateway) SendProgress(ctx context.Context) (SendProgress, error) {
	var progress SendProgress
	err := g.callJSON(ctx, CmdSendProgress, "", &progress)
	return progress, err
}

// Send submits a payment to all items at once.
func (g *Gateway) Send(ctx context.Context, items []models.SendItem) error {
	outputs := make([]sendOutput, 0, len(items))
	for _, it := range items {
		outputs = append(outputs, sendOutput{Address: it.Address, Amount: it.Amount, Memo: it.Memo})
	}

	arg, err := json.Marshal(outputs)
	if err != nil {
		return &EngineError{Command: CmdSend, Err: err}
	}
	return g.callAck(ctx, CmdSend, string(arg))
}

// LastTxID returns the id of the most recent wallet transaction.
func (g *Gateway) LastTxID(ctx context.Context) (string, error) {
	var res struct {
		LastTxID string `json:"last_txid"`
	}
	err := g.callJSON(ctx, CmdLastTxID, "", &res)
	return res.LastTxID, err
}

// Height returns the height the wallet has scanned up to.
func (g *Gateway) Height(ctx context.Context) (int64, error) {
	var res struct {
		Height int64 `json:"height"`
	}
	err := g.callJSON(ctx, CmdHeight, "", &res)
	return res.Height, err
}

// Save persists the wallet file.
func (g *Gateway) Save(ctx context.Context) error {
	return g.callAck(ctx, CmdSave, "")
}

func (g *Gateway) Encrypt(ctx context.Context, password string) error {
	return g.callSuccess(ctx, CmdEncrypt, password)
}

func (g *Gateway) Decrypt(ctx context.Context, password string) error {
	return g.callSuccess(ctx, CmdDecrypt, password)
}

func (g *Gateway) Lock(ctx context.Context) error {
	return g.callSuccess(ctx, CmdLock, "")
}

func (g *Gateway) Unlock(ctx context.Context, password string) error {
	return g.callSuccess(ctx, CmdUnlock, password)
}

// Export returns the keys of address, or of every address if it is empty.
func (g *Gateway) Export(ctx context.Context, address string) ([]ExportedKey, error) {
	var keys []ExportedKey
	if err := g.callJSON(ctx, CmdExport, address, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// NewAddress derives a new address of the given type.
func (g *Gateway) NewAddress(ctx context.Context, addrType models.AddressType) (string, error) {
	var kind string
	switch addrType {
	case models.AddressTypeUnified:
		kind = "u"
	case models.AddressTypeSapling:
		kind = "z"
	case models.AddressTypeTransparent:
		kind = "t"
	default:
		return "", &EngineError{Command: CmdNew, Message: string(addrType), Err: fmt.Errorf("unknown address type")}
	}

	var addrs []string
	if err := g.callJSON(ctx, CmdNew, kind, &addrs); err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", &EngineError{Command: CmdNew, Err: ErrMalformedResult}
	}
	return addrs[0], nil
}

func (g *Gateway) Seed(ctx context.Context) (Seed, error) {
	var seed Seed
	err := g.callJSON(ctx, CmdSeed, "", &seed)
	return seed, err
}

// GetOption returns the textual value of a wallet option.
func (g *Gateway) GetOption(ctx context.Context, name string) (string, error) {
	var res map[string]flexString
	if err := g.callJSON(ctx, CmdGetOption, name, &res); err != nil {
		return "", err
	}
	value, ok := res[name]
	if !ok {
		return "", &EngineError{Command: CmdGetOption, Message: name, Err: ErrMalformedResult}
	}
	return string(value), nil
}

func (g *Gateway) SetOption(ctx context.Context, name, value string) error {
	return g.callAck(ctx, CmdSetOption, name+"="+value)
}

// ZecPrice returns the engine's cached fiat price, or nil if it has none.
func (g *Gateway) ZecPrice(ctx context.Context) (*float64, error) {
	var res struct {
		ZecPrice *float64 `json:"zec_price"`
	}
	if err := g.callJSON(ctx, CmdZecPrice, "", &res); err != nil {
		return nil, err
	}
	return res.ZecPrice, nil
}

func (g *Gateway) DefaultFee(ctx context.Context) (btcutil.Amount, error) {
	var res struct {
		DefaultFee btcutil.Amount `json:"defaultfee"`
	}
	err := g.callJSON(ctx, CmdDefaultFee, "", &res)
	return res.DefaultFee, err
}

// Import adds a spending or viewing key and starts a rescan from birthday.
func (g *Gateway) Import(ctx context.Context, key string, birthday int64) (string, error) {
	arg, err := json.Marshal(importArgs{Key: key, Birthday: birthday})
	if err != nil {
		return "", &EngineError{Command: CmdImport, Err: err}
	}
	result, err := g.Execute(ctx, CmdImport, string(arg))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
