package engine

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// Executor is the engine's only command entry point. Implementations must be
// safe to call from one goroutine at a time; [Gateway] guarantees that.
type Executor interface {
	Execute(ctx context.Context, command, arg string) (string, error)
}

// ExecutorFunc adapts a plain function to [Executor].
type ExecutorFunc func(ctx context.Context, command, arg string) (string, error)

// Execute implements [Executor].
func (f ExecutorFunc) Execute(ctx context.Context, command, arg string) (string, error) {
	return f(ctx, command, arg)
}

// Lifecycle opens and closes the engine's wallet. Every call answers "OK"
// on success or error text otherwise; InitializeNew and InitializeFromSeed
// answer with the seed JSON instead.
type Lifecycle interface {
	WalletExists(ctx context.Context, chainName string) (bool, error)
	InitializeNew(ctx context.Context, serverURI string) (string, error)
	InitializeFromSeed(ctx context.Context, serverURI, seed string, birthday int64, overwrite bool) (string, error)
	InitializeExisting(ctx context.Context, serverURI string) (string, error)
	Deinitialize(ctx context.Context) (string, error)
}
