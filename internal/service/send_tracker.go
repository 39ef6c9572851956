// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/lightningnetwork/lnd/ticker"
)

const (
	DefaultSendPollInterval = 2 * time.Second
	DefaultMaxPollErrors    = 5
	DefaultRefreshAttempts  = 30
)

// SendTrackerConfig tunes send-progress polling. Zero values fall back to
// the Default* constants.
type SendTrackerConfig struct {
	PollInterval  time.Duration
	MaxPollErrors int
	// RefreshAttempts bounds how often the post-send refresh is retried
	// while another refresh holds the coordinator, one PollInterval apart.
	RefreshAttempts int
}

// SendHandle is the pending result of a submitted send.
type SendHandle struct {
	id   string
	done chan struct{}
	txid string
	err  error
}

// ID returns the trace id the tracker logs this send under.
func (h *SendHandle) ID() string {
	return h.id
}

// Done is closed once the send resolved.
func (h *SendHandle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the send resolves and returns exactly one of a txid or
// an error.
func (h *SendHandle) Wait() (string, error) {
	<-h.done
	return h.txid, h.err
}

type sendTracker struct {
	engine    Engine
	refresher Refresher
	state     Publisher
	cfg       SendTrackerConfig
	now       func() time.Time

	// mu is held from submission until the send resolves.
	mu sync.Mutex

	logger *logger.Logger
}

// NewSendTracker creates a tracker. refresher is asked for a full refresh
// once a send produced a txid; it may be nil.
func NewSendTracker(eng Engine, refresher Refresher, state Publisher, cfg SendTrackerConfig, log *logger.Logger) SendTracker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultSendPollInterval
	}
	if cfg.MaxPollErrors <= 0 {
		cfg.MaxPollErrors = DefaultMaxPollErrors
	}
	if cfg.RefreshAttempts <= 0 {
		cfg.RefreshAttempts = DefaultRefreshAttempts
	}
	if log == nil {
		log = logger.Nop()
	}

	return &sendTracker{
		engine:    eng,
		refresher: refresher,
		state:     state,
		cfg:       cfg,
		now:       time.Now,
		logger:    log,
	}
}

// Send implements SendTracker.
func (t *sendTracker) Send(ctx context.Context, job models.SendJob, onProgress func(models.SendProgress)) (string, error) {
	h, err := t.Start(ctx, job, onProgress)
	if err != nil {
		return "", err
	}
	return h.Wait()
}

// Start implements SendTracker. Errors from validation or from the submission
// itself are returned directly; everything after that is reported through the
// handle. The poll outlives ctx: a send cannot be aborted once submitted.
func (t *sendTracker) Start(ctx context.Context, job models.SendJob, onProgress func(models.SendProgress)) (*SendHandle, error) {
	if err := validateSendJob(job); err != nil {
		return nil, err
	}
	if !t.mu.TryLock() {
		return nil, ErrSendInProgress
	}

	h := &SendHandle{id: utils.NewID(), done: make(chan struct{})}
	log := t.logger.WithStr("send_id", h.id)

	prev, err := t.engine.SendProgress(ctx)
	if err != nil {
		t.mu.Unlock()
		return nil, fmt.Errorf("read send progress: %w", err)
	}

	if err = t.engine.Send(ctx, job.Items); err != nil {
		t.mu.Unlock()
		log.Err(err).Int("outputs", len(job.Items)).Msg("send rejected by engine")
		return nil, err
	}

	log.Info().
		Int("outputs", len(job.Items)).
		Int64("total", int64(job.Total())).
		Int64("prev_engine_send_id", prev.ID).
		Msg("send submitted")

	go t.poll(context.WithoutCancel(ctx), h, prev.ID, onProgress)
	return h, nil
}

func validateSendJob(job models.SendJob) error {
	if len(job.Items) == 0 {
		return ErrEmptySendJob
	}
	for i, it := range job.Items {
		if it.Address == "" {
			return fmt.Errorf("item %d: %w", i, ErrInvalidAddress)
		}
		if it.Amount <= 0 {
			return fmt.Errorf("item %d: %w", i, ErrInvalidAmount)
		}
	}
	return nil
}

func (t *sendTracker) poll(ctx context.Context, h *SendHandle, prevID int64, onProgress func(models.SendProgress)) {
	defer close(h.done)
	defer t.mu.Unlock()

	log := t.logger.WithStr("send_id", h.id)

	tk := ticker.New(t.cfg.PollInterval)
	tk.Resume()
	defer tk.Stop()

	start := t.now()
	failures := 0

	for range tk.Ticks() {
		p, err := t.engine.SendProgress(ctx)
		if err != nil {
			failures++
			log.Warn().Err(err).Int("consecutive_failures", failures).Msg("send progress poll failed")
			if failures >= t.cfg.MaxPollErrors {
				h.err = &SendFailure{Reason: "send progress unavailable", Err: err}
				t.publish(&models.SendProgress{SendID: prevID, Error: h.err.Error()}, onProgress)
				return
			}
			continue
		}
		failures = 0

		progress := t.progressFrom(p, prevID, start)
		t.publish(&progress, onProgress)

		if progress.TxID != "" {
			h.txid = progress.TxID
			log.Info().Str("txid", h.txid).Msg("send completed")
			t.refreshAfterSend(ctx, log)
			return
		}
		if progress.Error != "" {
			h.err = &SendFailure{Reason: progress.Error}
			log.Warn().Str("reason", progress.Error).Msg("send failed")
			return
		}
	}
}

// progressFrom turns the engine's report into published progress. Until the
// engine reports a new send id it is still working on an earlier send and
// the report is not ours.
func (t *sendTracker) progressFrom(p engine.SendProgress, prevID int64, start time.Time) models.SendProgress {
	if p.ID == prevID {
		return models.SendProgress{SendID: p.ID}
	}

	completed := p.Progress
	total := max(p.Total, completed)
	elapsed := t.now().Sub(start).Seconds()

	eta := int64(math.Round(elapsed / float64(max(completed, 1)) * float64(total-completed)))
	if eta < 1 {
		eta = 1
	}

	progress := models.SendProgress{
		SendID:     p.ID,
		InProgress: true,
		Completed:  completed,
		Total:      total,
		ETASeconds: eta,
	}

	switch {
	case p.TxID != nil && *p.TxID != "":
		progress.TxID = *p.TxID
		progress.InProgress = false
	case p.Error != nil && *p.Error != "":
		progress.Error = *p.Error
		progress.InProgress = false
	}
	return progress
}

func (t *sendTracker) publish(progress *models.SendProgress, onProgress func(models.SendProgress)) {
	if t.state != nil {
		t.state.SetSendProgress(progress)
	}
	if onProgress != nil {
		onProgress(*progress)
	}
}

func (t *sendTracker) refreshAfterSend(ctx context.Context, log *logger.Logger) {
	if t.refresher == nil {
		return
	}
	go func() {
		tk := ticker.New(t.cfg.PollInterval)
		tk.Resume()
		defer tk.Stop()

		for attempt := 1; ; attempt++ {
			err := t.refresher.Refresh(ctx, true)
			switch {
			case err == nil:
				return
			case !errors.Is(err, ErrRefreshInFlight):
				log.Warn().Err(err).Msg("refresh after send did not complete")
				return
			case attempt >= t.cfg.RefreshAttempts:
				log.Warn().Int("attempts", attempt).Msg("refresh after send skipped, coordinator stayed busy")
				return
			}
			<-tk.Ticks()
		}
	}()
}
