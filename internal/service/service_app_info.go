package service

import (
	"context"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
)

type appInfoService struct {
	build   models.AppBuildInfo
	version string

	logger *logger.Logger
}

// NewAppInfoService reports the build version, or configVersion when the
// binary was built without one.
func NewAppInfoService(build models.AppBuildInfo, configVersion string, logger *logger.Logger) (AppInfoService, error) {
	version := build.BuildVersion()
	if version == "" || version == models.BuildValueUnknown {
		version = configVersion
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build:   build,
		version: version,
		logger:  logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.build
}
