package server

import "context"

// Server defines the lifecycle contract for the local API server.
//
// Run blocks until ctx is cancelled or the listener fails, then releases
// its resources. A server that stopped because ctx was cancelled returns nil.
type Server interface {
	Run(ctx context.Context) error
}
