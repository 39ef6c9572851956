// Package workers runs the long-lived parts of the wallet runtime side by
// side: the local API server and the sync coordinator's ticks.
package workers

import "context"

// Worker is a long-running component. Run blocks until ctx is cancelled or
// the worker fails. A worker stopped by cancellation returns nil.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
