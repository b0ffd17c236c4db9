package http

import (
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/service"
)

// DefaultRequestTimeout bounds every request when no timeout is configured.
const DefaultRequestTimeout = 5 * time.Second

type Handler struct {
	services *service.Services

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	logger.Info().Dur("request_timeout", requestTimeout).Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
