package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lite-wallet/internal/config"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/service"
	"github.com/MKhiriev/go-lite-wallet/internal/workers"
	"github.com/MKhiriev/go-lite-wallet/models"
)

// closeTimeout bounds saving and closing the wallet on shutdown.
const closeTimeout = 30 * time.Second

type App struct {
	services *service.Services
	server   workers.Worker
	cfg      config.ClientConfig

	logger *logger.Logger
}

func NewApp(services *service.Services, server workers.Worker, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if services == nil || server == nil || cfg == nil {
		return nil, ErrIncompleteApp
	}
	return &App{services: services, server: server, cfg: *cfg, logger: logger}, nil
}

func (a *App) Run(ctx context.Context) error {
	endpoint, err := a.services.Settings.ServerURI(ctx, a.cfg.App.ServerURI)
	if err != nil {
		return fmt.Errorf("resolve server uri: %w", err)
	}

	if err = a.openWallet(ctx, endpoint); err != nil {
		return err
	}
	defer a.closeWallet(ctx)

	a.logger.Info().Msg("waiting for initial sync")
	if err = a.services.WalletLifecycle.WaitForSync(ctx, a.logSyncProgress); err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}

	return workers.NewWorkers(
		a.server,
		workers.NewCoordinatorWorker(a.services.SyncCoordinator, endpoint, a.logger),
	).Run(ctx)
}

// openWallet opens the wallet file of the configured chain. Without one it
// restores from the configured seed, or creates a fresh wallet.
func (a *App) openWallet(ctx context.Context, endpoint string) error {
	log := a.logger.WithStr("server_uri", endpoint)
	lifecycle := a.services.WalletLifecycle

	exists, err := lifecycle.Exists(ctx, a.cfg.App.ChainName)
	if err != nil {
		return fmt.Errorf("check wallet: %w", err)
	}

	switch {
	case exists:
		if err = lifecycle.Open(ctx, endpoint); err != nil {
			return fmt.Errorf("open wallet: %w", err)
		}
		log.Info().Msg("wallet opened")
	case a.cfg.App.RestoreSeed != "":
		err = lifecycle.Restore(ctx, endpoint, a.cfg.App.RestoreSeed, a.cfg.App.RestoreBirthday, false)
		if err != nil {
			return fmt.Errorf("restore wallet: %w", err)
		}
		log.Info().Int64("birthday", a.cfg.App.RestoreBirthday).Msg("wallet restored from seed")
	default:
		seed, err := lifecycle.Create(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("create wallet: %w", err)
		}
		log.Info().Int64("birthday", seed.Birthday).Msg("new wallet created, back up the seed via GET /api/wallet/seed")
	}
	return nil
}

func (a *App) closeWallet(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()

	if err := a.services.WalletLifecycle.Close(ctx); err != nil {
		a.logger.Err(err).Str("func", "*App.closeWallet").Msg("error closing wallet")
		return
	}
	a.logger.Info().Msg("wallet closed")
}

func (a *App) logSyncProgress(status models.SyncStatus) {
	a.logger.Debug().
		Int64("sync_id", status.SyncID).
		Int64("batch", status.BatchNum).
		Int64("batch_total", status.BatchTotal).
		Float64("progress", status.Progress()).
		Msg("initial sync")
}
