package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/lightningnetwork/lnd/ticker"
)

type walletLifecycle struct {
	lifecycle    engine.Lifecycle
	engine       Engine
	state        Publisher
	pollInterval time.Duration
	logger       *logger.Logger
}

// NewWalletLifecycle creates the service that brackets a wallet session.
// pollInterval paces the sync-status poll of WaitForSync and Rescan.
func NewWalletLifecycle(lc engine.Lifecycle, eng Engine, state Publisher, pollInterval time.Duration, log *logger.Logger) WalletLifecycle {
	if pollInterval <= 0 {
		pollInterval = DefaultSyncPollInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &walletLifecycle{lifecycle: lc, engine: eng, state: state, pollInterval: pollInterval, logger: log}
}

func (w *walletLifecycle) Exists(ctx context.Context, chainName string) (bool, error) {
	exists, err := w.lifecycle.WalletExists(ctx, chainName)
	if err != nil {
		return false, fmt.Errorf("check wallet exists: %w", err)
	}
	return exists, nil
}

// Open loads the existing wallet. The engine must answer exactly "OK".
func (w *walletLifecycle) Open(ctx context.Context, serverURI string) error {
	res, err := w.lifecycle.InitializeExisting(ctx, serverURI)
	if err != nil {
		return fmt.Errorf("initialize existing wallet: %w", err)
	}
	if res = strings.TrimSpace(res); res != engine.ResultOK {
		return fmt.Errorf("%w: %s", ErrWalletOpen, res)
	}

	w.logger.Info().Str("server", serverURI).Msg("wallet opened")
	return nil
}

// Create makes a new wallet and returns its seed so it can be shown once.
func (w *walletLifecycle) Create(ctx context.Context, serverURI string) (engine.Seed, error) {
	res, err := w.lifecycle.InitializeNew(ctx, serverURI)
	if err != nil {
		return engine.Seed{}, fmt.Errorf("initialize new wallet: %w", err)
	}
	if isErrorResult(res) {
		return engine.Seed{}, &engine.EngineError{Command: "initialize_new", Message: strings.TrimSpace(res)}
	}

	var seed engine.Seed
	if err = json.Unmarshal([]byte(res), &seed); err != nil {
		return engine.Seed{}, &engine.EngineError{Command: "initialize_new", Err: fmt.Errorf("%w: %v", engine.ErrMalformedResult, err)}
	}

	w.logger.Info().Str("server", serverURI).Int64("birthday", seed.Birthday).Msg("new wallet created")
	return seed, nil
}

// Restore rebuilds a wallet from its seed phrase and birthday height.
func (w *walletLifecycle) Restore(ctx context.Context, serverURI, seed string, birthday int64, overwrite bool) error {
	res, err := w.lifecycle.InitializeFromSeed(ctx, serverURI, seed, birthday, overwrite)
	if err != nil {
		return fmt.Errorf("initialize wallet from seed: %w", err)
	}
	if isErrorResult(res) {
		return &engine.EngineError{Command: "initialize_from_seed", Message: strings.TrimSpace(res)}
	}

	w.logger.Info().Str("server", serverURI).Int64("birthday", birthday).Msg("wallet restored from seed")
	return nil
}

// WaitForSync starts a sync and blocks until the engine reports a finished
// run newer than the one in progress before the call.
func (w *walletLifecycle) WaitForSync(ctx context.Context, onProgress func(models.SyncStatus)) error {
	return w.runAndWait(ctx, "sync", w.engine.Sync, onProgress)
}

// Rescan restarts scanning from the wallet birthday and waits like
// WaitForSync.
func (w *walletLifecycle) Rescan(ctx context.Context, onProgress func(models.SyncStatus)) error {
	return w.runAndWait(ctx, "rescan", w.engine.Rescan, onProgress)
}

func (w *walletLifecycle) runAndWait(ctx context.Context, what string, start func(context.Context) error, onProgress func(models.SyncStatus)) error {
	prev, err := w.engine.SyncStatus(ctx)
	if err != nil {
		return fmt.Errorf("read sync status before %s: %w", what, err)
	}
	if err = start(ctx); err != nil {
		return fmt.Errorf("start %s: %w", what, err)
	}

	t := ticker.New(w.pollInterval)
	t.Resume()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Ticks():
		}

		status, err := w.engine.SyncStatus(ctx)
		if err != nil {
			w.state.SetLastError(err.Error())
			return fmt.Errorf("%w: %w", ErrSyncAborted, err)
		}

		w.state.SetSyncStatus(status)
		if onProgress != nil {
			onProgress(status)
		}

		if !status.Finished(prev.SyncID) {
			continue
		}

		if status.HasError() {
			w.state.SetLastError(*status.LastError)
			w.logger.Warn().Str("error", *status.LastError).Int64("sync_id", status.SyncID).Msgf("%s finished with error, wallet not saved", what)
			return nil
		}
		if err = w.engine.Save(ctx); err != nil {
			return fmt.Errorf("save wallet after %s: %w", what, err)
		}

		w.logger.Info().Int64("sync_id", status.SyncID).Msgf("%s finished", what)
		return nil
	}
}

// Close deinitializes the engine, saving the wallet first.
func (w *walletLifecycle) Close(ctx context.Context) error {
	if err := w.engine.Save(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("save before deinitialize failed")
	}

	res, err := w.lifecycle.Deinitialize(ctx)
	if err != nil {
		return fmt.Errorf("deinitialize: %w", err)
	}

	w.logger.Info().Str("result", strings.TrimSpace(res)).Msg("wallet closed")
	return nil
}

func isErrorResult(res string) bool {
	res = strings.TrimSpace(res)
	return len(res) >= 5 && strings.EqualFold(res[:5], "error")
}
