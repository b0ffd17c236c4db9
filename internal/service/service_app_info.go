package service

import (
	"context"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
)

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService returns ErrVersionIsNotSpecified when cfg.Version is
// empty. The optional build info is reported next to the version at startup.
func NewAppInfoService(cfg config.App, logger *logger.Logger, build ...models.AppBuildInfo) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	s := &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}
	if len(build) > 0 {
		s.build = build[0]
		logger.Info().
			Str("version", cfg.Version).
			Str("build_version", s.build.Version).
			Str("build_date", s.build.BuildDate).
			Str("build_commit", s.build.BuildCommit).
			Msg("app info")
	}

	return s, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
