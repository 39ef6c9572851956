package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/store"
)

const settingServerURI = "lwd.serveruri"

// legacyServers are retired lightwalletd endpoints. A stored value matching
// one of them is replaced by the configured default.
var legacyServers = map[string]bool{
	"https://lightwalletd.zecwallet.co:1443": true,
	"https://lwdv2.zecwallet.co:1443":        true,
}

type settingsService struct {
	repo   store.SettingsRepository
	logger *logger.Logger
}

func NewSettingsService(repo store.SettingsRepository, logger *logger.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		logger: logger,
	}
}

// ServerURI returns the stored server endpoint, or fallback when none is
// stored or the stored one is retired.
func (s *settingsService) ServerURI(ctx context.Context, fallback string) (string, error) {
	uri, err := s.repo.GetSetting(ctx, settingServerURI)
	if err != nil {
		if errors.Is(err, store.ErrSettingNotFound) {
			return fallback, nil
		}
		return "", fmt.Errorf("read server uri: %w", err)
	}

	if uri == "" || legacyServers[uri] {
		s.logger.Info().Str("func", "*settingsService.ServerURI").Str("stored", uri).Msg("using default server")
		return fallback, nil
	}

	return uri, nil
}

func (s *settingsService) SetServerURI(ctx context.Context, uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return ErrInvalidServer
	}

	if err := s.repo.SetSetting(ctx, settingServerURI, uri); err != nil {
		return fmt.Errorf("store server uri: %w", err)
	}

	return nil
}
