package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
)

type refreshSpy struct {
	calls atomic.Int64
	full  atomic.Bool
	// busy is how many leading calls find a refresh already in flight.
	busy int64
	err  error
}

func (r *refreshSpy) Refresh(ctx context.Context, full bool) error {
	r.full.Store(full)
	if r.calls.Add(1) <= r.busy {
		return ErrRefreshInFlight
	}
	return r.err
}

type progressLog struct {
	mu    sync.Mutex
	items []models.SendProgress
}

func (l *progressLog) add(p models.SendProgress) {
	l.mu.Lock()
	l.items = append(l.items, p)
	l.mu.Unlock()
}

func (l *progressLog) all() []models.SendProgress {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.SendProgress(nil), l.items...)
}

func newTestTracker(f *fakeEngine, r Refresher, state Publisher) SendTracker {
	return NewSendTracker(f, r, state, SendTrackerConfig{
		PollInterval:  time.Millisecond,
		MaxPollErrors: 3,
	}, logger.Nop())
}

func oneItemJob() models.SendJob {
	return models.SendJob{Items: []models.SendItem{
		{Address: "zs1recipient", Amount: btcAmount(50000), Memo: "hello"},
	}}
}

// scriptedProgress answers SendProgress calls from a fixed script; the last
// step repeats. It counts its own calls so it can be installed mid-test.
func scriptedProgress(steps ...engine.SendProgress) func(int) (engine.SendProgress, error) {
	var calls atomic.Int64
	return func(int) (engine.SendProgress, error) {
		n := int(calls.Add(1))
		if n > len(steps) {
			return steps[len(steps)-1], nil
		}
		return steps[n-1], nil
	}
}

// ── Send ──

func TestSend_ResolvesWithTxID(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 5, TxID: strPtr("old-tx")},
		engine.SendProgress{ID: 5, TxID: strPtr("old-tx")},
		engine.SendProgress{ID: 5, TxID: strPtr("old-tx")},
		engine.SendProgress{ID: 5, TxID: strPtr("old-tx")},
		engine.SendProgress{ID: 6, Sending: true, Progress: 2, Total: 4},
		engine.SendProgress{ID: 6, Progress: 4, Total: 4, TxID: strPtr("new-tx")},
	)
	spy := &refreshSpy{}
	state := NewWalletState()
	tr := newTestTracker(f, spy, state)
	progress := &progressLog{}

	txid, err := tr.Send(context.Background(), oneItemJob(), progress.add)

	require.NoError(t, err)
	assert.Equal(t, "new-tx", txid)

	got := progress.all()
	require.Len(t, got, 5)
	for _, p := range got[:3] {
		assert.Equal(t, models.SendProgress{SendID: 5}, p)
	}
	assert.Equal(t, int64(6), got[3].SendID)
	assert.True(t, got[3].InProgress)
	assert.Equal(t, int64(2), got[3].Completed)
	assert.Equal(t, int64(4), got[3].Total)
	assert.GreaterOrEqual(t, got[3].ETASeconds, int64(1))
	assert.Equal(t, "new-tx", got[4].TxID)
	assert.False(t, got[4].InProgress)

	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, waitFor, tick)
	assert.True(t, spy.full.Load())

	snap := state.Snapshot()
	require.NotNil(t, snap.SendProgress)
	assert.Equal(t, "new-tx", snap.SendProgress.TxID)

	f.mu.Lock()
	require.Len(t, f.sent, 1)
	assert.Equal(t, oneItemJob().Items, f.sent[0])
	f.mu.Unlock()
}

func TestSend_RefreshRetriedWhileCoordinatorBusy(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, TxID: strPtr("tx-busy")},
	)
	spy := &refreshSpy{busy: 2}
	tr := newTestTracker(f, spy, nil)

	txid, err := tr.Send(context.Background(), oneItemJob(), nil)

	require.NoError(t, err)
	assert.Equal(t, "tx-busy", txid)
	require.Eventually(t, func() bool { return spy.calls.Load() == 3 }, waitFor, tick)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(3), spy.calls.Load())
}

func TestSend_RefreshRetriesAreBounded(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, TxID: strPtr("tx")},
	)
	spy := &refreshSpy{busy: 1000}
	tr := NewSendTracker(f, spy, nil, SendTrackerConfig{
		PollInterval:    time.Millisecond,
		RefreshAttempts: 4,
	}, logger.Nop())

	_, err := tr.Send(context.Background(), oneItemJob(), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return spy.calls.Load() == 4 }, waitFor, tick)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(4), spy.calls.Load())
}

func TestSend_RefreshFailureIsNotRetried(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, TxID: strPtr("tx")},
	)
	spy := &refreshSpy{err: ErrSyncTimeout}
	tr := newTestTracker(f, spy, nil)

	_, err := tr.Send(context.Background(), oneItemJob(), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, waitFor, tick)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), spy.calls.Load())
}

func TestSend_EngineErrorResolvesFailure(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, Progress: 1, Total: 1, Error: strPtr("insufficient funds")},
	)
	spy := &refreshSpy{}
	tr := newTestTracker(f, spy, NewWalletState())

	txid, err := tr.Send(context.Background(), oneItemJob(), nil)

	assert.Empty(t, txid)
	var failure *SendFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "insufficient funds", failure.Reason)
	assert.Zero(t, spy.calls.Load())
}

func TestSend_StopsPollingAfterResolution(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, TxID: strPtr("tx")},
	)
	tr := newTestTracker(f, nil, nil)

	_, err := tr.Send(context.Background(), oneItemJob(), nil)
	require.NoError(t, err)

	calls := f.count(engine.CmdSendProgress)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, f.count(engine.CmdSendProgress))
}

func TestSend_PollErrorsExhaustBudget(t *testing.T) {
	f := newFakeEngine()
	unavailable := errors.New("engine busy")
	f.sendProgressFn = func(call int) (engine.SendProgress, error) {
		if call == 1 {
			return engine.SendProgress{ID: 3}, nil
		}
		return engine.SendProgress{}, unavailable
	}
	state := NewWalletState()
	tr := newTestTracker(f, nil, state)

	_, err := tr.Send(context.Background(), oneItemJob(), nil)

	var failure *SendFailure
	require.ErrorAs(t, err, &failure)
	assert.ErrorIs(t, err, unavailable)
	assert.Equal(t, 1+3, f.count(engine.CmdSendProgress))
	require.NotNil(t, state.Snapshot().SendProgress)
	assert.NotEmpty(t, state.Snapshot().SendProgress.Error)
}

func TestSend_PollErrorsResetOnSuccess(t *testing.T) {
	f := newFakeEngine()
	flaky := errors.New("flaky")
	f.sendProgressFn = func(call int) (engine.SendProgress, error) {
		switch {
		case call == 1:
			return engine.SendProgress{ID: 3}, nil
		case call == 8:
			return engine.SendProgress{ID: 4, TxID: strPtr("tx")}, nil
		case call%3 == 1:
			return engine.SendProgress{ID: 3}, nil
		default:
			return engine.SendProgress{}, flaky
		}
	}
	tr := newTestTracker(f, nil, nil)

	txid, err := tr.Send(context.Background(), oneItemJob(), nil)

	require.NoError(t, err)
	assert.Equal(t, "tx", txid)
}

// ── Start ──

func TestStart_RejectsConcurrentSend(t *testing.T) {
	f := newFakeEngine()
	release := make(chan struct{})
	f.sendProgressFn = func(call int) (engine.SendProgress, error) {
		if call == 1 {
			return engine.SendProgress{ID: 1}, nil
		}
		select {
		case <-release:
			return engine.SendProgress{ID: 2, TxID: strPtr("tx")}, nil
		default:
			return engine.SendProgress{ID: 1}, nil
		}
	}
	tr := newTestTracker(f, nil, nil)

	h, err := tr.Start(context.Background(), oneItemJob(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID())

	_, err = tr.Start(context.Background(), oneItemJob(), nil)
	assert.ErrorIs(t, err, ErrSendInProgress)
	assert.Equal(t, 1, f.count(engine.CmdSend))

	close(release)
	txid, err := h.Wait()
	require.NoError(t, err)
	assert.Equal(t, "tx", txid)

	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 2},
		engine.SendProgress{ID: 3, TxID: strPtr("tx-2")},
	)
	_, err = tr.Send(context.Background(), oneItemJob(), nil)
	require.NoError(t, err)
}

func TestStart_PollOutlivesCallerContext(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = func(call int) (engine.SendProgress, error) {
		if call < 4 {
			return engine.SendProgress{ID: 1}, nil
		}
		return engine.SendProgress{ID: 2, TxID: strPtr("tx")}, nil
	}
	tr := newTestTracker(f, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	h, err := tr.Start(ctx, oneItemJob(), nil)
	require.NoError(t, err)
	cancel()

	select {
	case <-h.Done():
	case <-time.After(waitFor):
		t.Fatal("send did not resolve")
	}
	txid, err := h.Wait()
	require.NoError(t, err)
	assert.Equal(t, "tx", txid)
}

func TestStart_EngineRejectionReleasesLock(t *testing.T) {
	f := newFakeEngine()
	f.sendErr = errors.New("Error: invalid address")
	tr := newTestTracker(f, nil, nil)

	_, err := tr.Start(context.Background(), oneItemJob(), nil)
	require.Error(t, err)

	f.sendErr = nil
	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, TxID: strPtr("tx")},
	)
	_, err = tr.Send(context.Background(), oneItemJob(), nil)
	assert.NoError(t, err)
}

func TestStart_ProgressReadFailureReleasesLock(t *testing.T) {
	f := newFakeEngine()
	f.sendProgressFn = func(int) (engine.SendProgress, error) {
		return engine.SendProgress{}, errors.New("no progress")
	}
	tr := newTestTracker(f, nil, nil)

	_, err := tr.Start(context.Background(), oneItemJob(), nil)
	require.Error(t, err)
	assert.Equal(t, 0, f.count(engine.CmdSend))

	f.sendProgressFn = scriptedProgress(
		engine.SendProgress{ID: 1},
		engine.SendProgress{ID: 2, TxID: strPtr("tx")},
	)
	_, err = tr.Send(context.Background(), oneItemJob(), nil)
	assert.NoError(t, err)
}

func TestStart_Validation(t *testing.T) {
	tests := []struct {
		name string
		job  models.SendJob
		want error
	}{
		{name: "no items", job: models.SendJob{}, want: ErrEmptySendJob},
		{
			name: "missing address",
			job:  models.SendJob{Items: []models.SendItem{{Amount: 1}}},
			want: ErrInvalidAddress,
		},
		{
			name: "zero amount",
			job:  models.SendJob{Items: []models.SendItem{{Address: "zs1a", Amount: 1}, {Address: "zs1b"}}},
			want: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			job:  models.SendJob{Items: []models.SendItem{{Address: "zs1a", Amount: -5}}},
			want: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeEngine()
			tr := newTestTracker(f, nil, nil)

			_, err := tr.Start(context.Background(), tt.job, nil)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, f.count(engine.CmdSendProgress))
			assert.Equal(t, 0, f.count(engine.CmdSend))
		})
	}
}

// ── progressFrom ──

func TestProgressFrom(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		report  engine.SendProgress
		want    models.SendProgress
	}{
		{
			name:   "report from earlier send",
			report: engine.SendProgress{ID: 7, Progress: 3, Total: 3, TxID: strPtr("old")},
			want:   models.SendProgress{SendID: 7},
		},
		{
			name:    "halfway",
			elapsed: 10 * time.Second,
			report:  engine.SendProgress{ID: 8, Sending: true, Progress: 2, Total: 4},
			want:    models.SendProgress{SendID: 8, InProgress: true, Completed: 2, Total: 4, ETASeconds: 10},
		},
		{
			name:    "nothing completed yet",
			elapsed: 3 * time.Second,
			report:  engine.SendProgress{ID: 8, Sending: true, Total: 4},
			want:    models.SendProgress{SendID: 8, InProgress: true, Total: 4, ETASeconds: 12},
		},
		{
			name:    "eta floored at one second",
			elapsed: 10 * time.Second,
			report:  engine.SendProgress{ID: 8, Progress: 4, Total: 4},
			want:    models.SendProgress{SendID: 8, InProgress: true, Completed: 4, Total: 4, ETASeconds: 1},
		},
		{
			name:    "total below completed",
			elapsed: time.Second,
			report:  engine.SendProgress{ID: 8, Progress: 5, Total: 3},
			want:    models.SendProgress{SendID: 8, InProgress: true, Completed: 5, Total: 5, ETASeconds: 1},
		},
		{
			name:    "completed with txid",
			elapsed: time.Second,
			report:  engine.SendProgress{ID: 8, Progress: 4, Total: 4, TxID: strPtr("abc")},
			want:    models.SendProgress{SendID: 8, Completed: 4, Total: 4, ETASeconds: 1, TxID: "abc"},
		},
		{
			name:    "failed",
			elapsed: time.Second,
			report:  engine.SendProgress{ID: 8, Progress: 1, Total: 4, Error: strPtr("bad")},
			want:    models.SendProgress{SendID: 8, Completed: 1, Total: 4, ETASeconds: 3, Error: "bad"},
		},
		{
			name:    "empty txid is not completion",
			elapsed: 2 * time.Second,
			report:  engine.SendProgress{ID: 8, Progress: 1, Total: 2, TxID: strPtr("")},
			want:    models.SendProgress{SendID: 8, InProgress: true, Completed: 1, Total: 2, ETASeconds: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &sendTracker{now: func() time.Time { return start.Add(tt.elapsed) }}

			got := tr.progressFrom(tt.report, 7, start)

			assert.Equal(t, tt.want, got)
		})
	}
}
