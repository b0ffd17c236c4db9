package service

import (
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/adapter"
	"github.com/MKhiriev/go-photo-share/internal/broker"
	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mail"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/models"
)

type Services struct {
	TokenService   TokenService
	Authenticator  Authenticator
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

// Dependencies groups the external clients the services are built on.
// Publisher may be nil, in which case e-mails are sent in-process.
type Dependencies struct {
	Storages      *store.Storages
	ObjectStorage adapter.ObjectStorage
	Publisher     broker.Publisher
	Sender        mail.Sender
	BuildInfo     models.AppBuildInfo
}

func NewServices(deps Dependencies, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger, deps.BuildInfo)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	tokens := NewTokenService(cfg.App, logger)
	emails := NewEmailDispatcher(deps.Publisher, deps.Sender, logger)

	authService := NewAuthValidationService().Wrap(
		NewAuthService(deps.Storages, tokens, emails, *cfg, logger),
	)

	return &Services{
		TokenService:   tokens,
		Authenticator:  NewAuthenticator(tokens, deps.Storages, cfg.Cache.UserTTL, logger),
		AuthService:    authService,
		UserService:    NewUserService(deps.Storages, deps.ObjectStorage, logger),
		AppInfoService: appInfo,
	}, nil
}
