package workers

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/service"
)

type coordinatorWorker struct {
	coordinator service.SyncCoordinator
	endpoint    string
	logger      *logger.Logger
}

// NewCoordinatorWorker returns a worker that configures the coordinator's
// ticks for endpoint and clears them when its context ends.
func NewCoordinatorWorker(coordinator service.SyncCoordinator, endpoint string, log *logger.Logger) Worker {
	return &coordinatorWorker{coordinator: coordinator, endpoint: endpoint, logger: log}
}

func (w *coordinatorWorker) Run(ctx context.Context) error {
	if err := w.coordinator.Configure(ctx, w.endpoint); err != nil {
		return fmt.Errorf("configure sync coordinator: %w", err)
	}
	w.logger.Info().Str("endpoint", w.endpoint).Msg("sync coordinator configured")

	<-ctx.Done()

	w.coordinator.ClearTimers()
	w.logger.Info().Msg("sync coordinator stopped")
	return nil
}
