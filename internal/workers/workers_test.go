// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/service"
)

// blockingWorker counts runs and blocks until its context ends.
type blockingWorker struct {
	runCount atomic.Int32
}

func (m *blockingWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	<-ctx.Done()
	return nil
}

func runAsync(ctx context.Context, ws *Workers) <-chan error {
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
		return nil
	}
}

func TestWorkers_Run_AllWorkersAreStarted(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ctx, cancel := context.WithCancel(context.Background())

	done := runAsync(ctx, NewWorkers(w1, w2, w3))
	require.Eventually(t, func() bool {
		return w1.runCount.Load() == 1 && w2.runCount.Load() == 1 && w3.runCount.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}

func TestWorkers_Run_FailureStopsOthers(t *testing.T) {
	boom := errors.New("listener failed")
	other := &blockingWorker{}

	done := runAsync(context.Background(), NewWorkers(other, WorkerFunc(func(context.Context) error {
		return boom
	})))

	assert.ErrorIs(t, waitDone(t, done), boom)
}

// ─────────────────────────────────────────────
// coordinator worker
// ─────────────────────────────────────────────

type fakeCoordinator struct {
	service.SyncCoordinator

	configureErr error
	endpoint     atomic.Value
	cleared      atomic.Int32
}

func (f *fakeCoordinator) Configure(_ context.Context, endpoint string) error {
	f.endpoint.Store(endpoint)
	return f.configureErr
}

func (f *fakeCoordinator) ClearTimers() {
	f.cleared.Add(1)
}

func TestCoordinatorWorker_ConfiguresThenClears(t *testing.T) {
	c := &fakeCoordinator{}
	ctx, cancel := context.WithCancel(context.Background())

	done := runAsync(ctx, NewWorkers(NewCoordinatorWorker(c, "https://lwd.example.org", logger.Nop())))
	require.Eventually(t, func() bool {
		return c.endpoint.Load() == "https://lwd.example.org"
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, c.cleared.Load())

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.EqualValues(t, 1, c.cleared.Load())
}

func TestCoordinatorWorker_ConfigureFailure(t *testing.T) {
	c := &fakeCoordinator{configureErr: errors.New("engine unreachable")}

	err := NewCoordinatorWorker(c, "https://lwd.example.org", logger.Nop()).Run(context.Background())

	require.ErrorIs(t, err, c.configureErr)
	assert.Zero(t, c.cleared.Load())
}
