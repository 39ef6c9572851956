package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-lite-wallet/internal/adapter"
	"github.com/MKhiriev/go-lite-wallet/internal/client"
	"github.com/MKhiriev/go-lite-wallet/internal/config"
	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/handler"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/server"
	"github.com/MKhiriev/go-lite-wallet/internal/service"
	"github.com/MKhiriev/go-lite-wallet/internal/store"
	"github.com/MKhiriev/go-lite-wallet/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("go-lite-wallet").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("go-lite-wallet", cfg.App.LogPath, cfg.App.LogLevel)
	log.Debug().
		Str("chain", cfg.App.ChainName).
		Str("engine", cfg.Engine.Address).
		Str("listen", cfg.Server.HTTPAddress).
		Str("db", cfg.Storage.DB.DSN).
		Msg("received configs")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	bridge, err := adapter.NewHTTPEngineBridge(cfg.Engine, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating engine bridge")
	}

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(engine.NewGateway(bridge, log), bridge, storages, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	app, err := client.NewApp(services, srv, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		return
	}
	log.Info().Msg("wallet runtime stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
