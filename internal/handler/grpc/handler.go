// Package grpc exposes the standard gRPC health service of the photo-share
// server, so orchestrators can probe it without going through HTTP.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name under which the API reports its health, next to
// the overall "" entry.
const ServiceName = "photoshare.API"

// Handler is the root gRPC transport handler.
//
// It owns the health server and reports SERVING once the service layer is
// wired. A handler instance is created once at startup and shared by the
// gRPC server.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health status starts as SERVING
// when services is non-nil and NOT_SERVING otherwise.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.SetServing(services != nil)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// SetServing switches both health entries between SERVING and NOT_SERVING.
func (h *Handler) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
}

// Shutdown marks every service NOT_SERVING and ignores later updates. Called
// before the gRPC server stops so that probes fail while connections drain.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogger logs every unary call with its method, status code and
// duration.
func (h *Handler) UnaryLogger(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	h.logger.Debug().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC call")

	return resp, err
}
