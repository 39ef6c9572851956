// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/lightningnetwork/lnd/ticker"
)

const (
	DefaultRefreshInterval      = 3 * time.Minute
	DefaultChangeDetectInterval = 3 * time.Second
	DefaultSyncPollInterval     = time.Second
	DefaultSyncRetryBudget      = 30
)

// SyncCoordinatorConfig holds the coordinator's tick intervals. Zero values
// fall back to the Default* constants.
type SyncCoordinatorConfig struct {
	RefreshInterval      time.Duration
	ChangeDetectInterval time.Duration
	SyncPollInterval     time.Duration
	SyncRetryBudget      int

	// NewTicker builds the two recurring ticks. Defaults to ticker.New.
	NewTicker func(time.Duration) ticker.Ticker
}

func (c SyncCoordinatorConfig) withDefaults() SyncCoordinatorConfig {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.ChangeDetectInterval <= 0 {
		c.ChangeDetectInterval = DefaultChangeDetectInterval
	}
	if c.SyncPollInterval <= 0 {
		c.SyncPollInterval = DefaultSyncPollInterval
	}
	if c.SyncRetryBudget <= 0 {
		c.SyncRetryBudget = DefaultSyncRetryBudget
	}
	if c.NewTicker == nil {
		c.NewTicker = func(d time.Duration) ticker.Ticker { return ticker.New(d) }
	}
	return c
}

type syncCoordinator struct {
	data walletData
	cfg  SyncCoordinatorConfig

	// updateLocked is held for the whole of a refresh or a change-detector
	// update. A handler that finds it held does nothing.
	updateLocked atomic.Bool

	mu            sync.Mutex
	configured    bool
	endpoint      string
	refreshTicker ticker.Ticker
	detectTicker  ticker.Ticker
	cancel        context.CancelFunc
	wg            sync.WaitGroup

	stateMu sync.Mutex
	state   models.CoordinatorState

	observedMu   sync.Mutex
	heightKnown  bool
	lastHeight   int64
	lastTxID     string
	observedTxID bool

	logger *logger.Logger
}

// NewSyncCoordinator creates an unconfigured coordinator. No engine call is
// made until Configure or Refresh.
func NewSyncCoordinator(eng Engine, state Publisher, reconciler *TxReconciler, cfg SyncCoordinatorConfig, log *logger.Logger) SyncCoordinator {
	if log == nil {
		log = logger.Nop()
	}
	if reconciler == nil {
		reconciler = NewTxReconciler()
	}

	c := &syncCoordinator{
		data:   walletData{engine: eng, state: state, reconciler: reconciler, logger: log},
		cfg:    cfg.withDefaults(),
		state:  models.CoordinatorUnconfigured,
		logger: log,
	}
	state.SetCoordinatorState(models.CoordinatorUnconfigured)
	return c
}

// Configure implements SyncCoordinator.
func (c *syncCoordinator) Configure(ctx context.Context, endpoint string) error {
	c.mu.Lock()
	if c.configured {
		c.mu.Unlock()
		return nil
	}

	c.configured = true
	c.endpoint = endpoint
	c.refreshTicker = c.cfg.NewTicker(c.cfg.RefreshInterval)
	c.detectTicker = c.cfg.NewTicker(c.cfg.ChangeDetectInterval)
	c.refreshTicker.Resume()
	c.detectTicker.Resume()

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	refreshTicks := c.refreshTicker.Ticks()
	detectTicks := c.detectTicker.Ticks()
	c.wg.Add(1)
	c.mu.Unlock()

	c.setState(models.CoordinatorIdle)
	c.logger.Info().
		Str("endpoint", endpoint).
		Dur("refresh_interval", c.cfg.RefreshInterval).
		Dur("change_detect_interval", c.cfg.ChangeDetectInterval).
		Msg("sync coordinator configured")

	go c.loop(loopCtx, refreshTicks, detectTicks)
	return nil
}

// loop dispatches ticks. Each handler runs in its own goroutine so that a
// tick arriving during a long refresh finds the update lock held and is
// skipped instead of queued.
func (c *syncCoordinator) loop(ctx context.Context, refreshTicks, detectTicks <-chan time.Time) {
	defer c.wg.Done()

	c.dispatch(func() { c.handle(c.Refresh(ctx, true), "initial refresh") })

	for {
		select {
		case <-ctx.Done():
			return
		case <-refreshTicks:
			c.dispatch(func() { c.handle(c.Refresh(ctx, false), "periodic refresh") })
		case <-detectTicks:
			c.dispatch(func() { c.handle(c.DetectChangeTick(ctx), "change detection") })
		}
	}
}

func (c *syncCoordinator) dispatch(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *syncCoordinator) handle(err error, what string) {
	if err == nil || errors.Is(err, ErrRefreshInFlight) || errors.Is(err, context.Canceled) {
		return
	}
	c.logger.Warn().Err(err).Str("handler", what).Msg("coordinator tick finished with error")
}

// Refresh implements Refresher. A full refresh, or one that finds a new
// block, starts an engine sync and polls until the wallet reaches the
// latest height or the retry budget runs out.
func (c *syncCoordinator) Refresh(ctx context.Context, full bool) error {
	if !c.updateLocked.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer c.updateLocked.Store(false)
	defer c.settle()

	c.setState(models.CoordinatorRefreshInFlight)

	info, err := c.data.fetchInfo(ctx)
	if err != nil {
		c.recordError(err)
		return err
	}

	latest := info.LatestBlockHeight
	lastHeight, known := c.observedHeight()
	if full || !known || latest > lastHeight {
		return c.fullRefresh(ctx, latest)
	}

	c.logger.Debug().Int64("height", latest).Msg("already at latest block, light refresh")
	return c.lightRefresh(ctx, latest)
}

func (c *syncCoordinator) fullRefresh(ctx context.Context, latest int64) error {
	c.setState(models.CoordinatorFullSyncPolling)

	if err := c.data.engine.Sync(ctx); err != nil {
		err = fmt.Errorf("start sync: %w", err)
		c.recordError(err)
		return err
	}

	var errs []error
	reached := true
	if err := c.waitForHeight(ctx, latest); err != nil {
		if ctx.Err() != nil {
			return err
		}
		reached = false
		errs = append(errs, err)
	}

	errs = append(errs,
		c.data.fetchBalances(ctx),
		c.data.fetchTransactions(ctx, latest),
		c.data.fetchPrice(ctx),
	)
	if err := c.data.engine.Save(ctx); err != nil {
		errs = append(errs, fmt.Errorf("save wallet: %w", err))
	}

	// An unreached height stays unobserved so the next tick syncs again.
	if reached {
		c.setObservedHeight(latest)
	}
	c.logger.Info().Int64("height", latest).Bool("reached", reached).Msg("finished full refresh")

	return c.advisory(errors.Join(errs...))
}

func (c *syncCoordinator) lightRefresh(ctx context.Context, latest int64) error {
	return c.advisory(errors.Join(
		c.data.fetchBalances(ctx),
		c.data.fetchTransactions(ctx, latest),
		c.data.fetchPrice(ctx),
	))
}

// waitForHeight polls sync status and wallet height until the wallet reaches
// target. Status is published on every poll.
func (c *syncCoordinator) waitForHeight(ctx context.Context, target int64) error {
	t := ticker.New(c.cfg.SyncPollInterval)
	t.Resume()
	defer t.Stop()

	for retries := 1; ; retries++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Ticks():
		}

		if status, err := c.data.engine.SyncStatus(ctx); err == nil {
			c.data.state.SetSyncStatus(status)
		} else {
			c.logger.Debug().Err(err).Msg("sync status poll failed")
		}

		height, err := c.data.engine.Height(ctx)
		if err != nil {
			c.logger.Debug().Err(err).Msg("wallet height poll failed")
		} else if height >= target {
			return nil
		}

		if retries >= c.cfg.SyncRetryBudget {
			return fmt.Errorf("%w: target %d after %d polls", ErrSyncTimeout, target, retries)
		}
	}
}

// DetectChangeTick implements SyncCoordinator. The update lock is taken only
// once the last txid is seen to change, so an idle tick never blocks a
// refresh.
func (c *syncCoordinator) DetectChangeTick(ctx context.Context) error {
	txid, err := c.data.engine.LastTxID(ctx)
	if err != nil {
		err = fmt.Errorf("fetch last txid: %w", err)
		c.recordError(err)
		return err
	}
	if !c.txIDChanged(txid) {
		return nil
	}

	if !c.updateLocked.CompareAndSwap(false, true) {
		return nil
	}
	defer c.updateLocked.Store(false)

	// another handler may have recorded it while the lock was free
	if !c.txIDChanged(txid) {
		return nil
	}

	c.setState(models.CoordinatorRefreshInFlight)
	defer c.settle()

	c.logger.Info().Str("txid", txid).Msg("last txid changed, updating wallet data")

	info, err := c.data.fetchInfo(ctx)
	if err != nil {
		c.recordError(err)
		return err
	}

	c.observedMu.Lock()
	c.lastTxID = txid
	c.observedTxID = true
	c.lastHeight = info.LatestBlockHeight
	c.heightKnown = true
	c.observedMu.Unlock()

	return c.advisory(errors.Join(
		c.data.fetchBalances(ctx),
		c.data.fetchTransactions(ctx, info.LatestBlockHeight),
		c.data.fetchPrice(ctx),
		c.data.fetchWalletSettings(ctx),
	))
}

// ClearTimers implements SyncCoordinator.
func (c *syncCoordinator) ClearTimers() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	if c.refreshTicker != nil {
		c.refreshTicker.Stop()
		c.refreshTicker = nil
	}
	if c.detectTicker != nil {
		c.detectTicker.Stop()
		c.detectTicker = nil
	}
	wasConfigured := c.configured
	c.configured = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	if wasConfigured {
		c.setState(models.CoordinatorUnconfigured)
		c.logger.Info().Msg("sync coordinator timers cleared")
	}
}

func (c *syncCoordinator) State() models.CoordinatorState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

func (c *syncCoordinator) LastObserved() (int64, string) {
	c.observedMu.Lock()
	defer c.observedMu.Unlock()
	return c.lastHeight, c.lastTxID
}

func (c *syncCoordinator) Endpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint
}

func (c *syncCoordinator) setState(state models.CoordinatorState) {
	c.stateMu.Lock()
	c.state = state
	c.stateMu.Unlock()
	c.data.state.SetCoordinatorState(state)
}

// settle returns the state machine to its resting state once a handler is
// done.
func (c *syncCoordinator) settle() {
	c.mu.Lock()
	configured := c.configured
	c.mu.Unlock()

	if configured {
		c.setState(models.CoordinatorIdle)
		return
	}
	c.setState(models.CoordinatorUnconfigured)
}

func (c *syncCoordinator) observedHeight() (int64, bool) {
	c.observedMu.Lock()
	defer c.observedMu.Unlock()
	return c.lastHeight, c.heightKnown
}

func (c *syncCoordinator) txIDChanged(txid string) bool {
	c.observedMu.Lock()
	defer c.observedMu.Unlock()
	return !c.observedTxID || c.lastTxID != txid
}

func (c *syncCoordinator) setObservedHeight(height int64) {
	c.observedMu.Lock()
	c.lastHeight = height
	c.heightKnown = true
	c.observedMu.Unlock()
}

func (c *syncCoordinator) advisory(err error) error {
	if err != nil {
		c.recordError(err)
	}
	return err
}

func (c *syncCoordinator) recordError(err error) {
	c.data.state.SetLastError(err.Error())
	c.logger.Warn().Err(err).Msg("wallet data refresh incomplete")
}
