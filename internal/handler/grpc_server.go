package handler

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// NewGRPCServer builds the gRPC server exposing the standard health service
// and reflection. The returned health server is updated by the caller as
// readiness changes.
func NewGRPCServer(logger zerolog.Logger) (*grpc.Server, *health.Server) {
	logger = logger.With().Str("handler", "grpc").Logger()

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		recoveryInterceptor(logger),
		loggingInterceptor(logger),
	))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, hs
}

// SetServing flips the overall gRPC health status.
func SetServing(hs *health.Server, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", st)
}

// SyncServing mirrors h's readiness, storage check included, onto hs.
func SyncServing(ctx context.Context, h *Health, hs *health.Server) bool {
	serving := h.Ready(ctx) == nil
	SetServing(hs, serving)
	return serving
}

// WatchReadiness keeps the gRPC health status in step with h until ctx ends.
func WatchReadiness(ctx context.Context, h *Health, hs *health.Server, interval time.Duration) {
	SyncServing(ctx, h, hs)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			SyncServing(ctx, h, hs)
		}
	}
}

func loggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		event := logger.Debug()
		if err != nil {
			event = logger.Warn().Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("gRPC request")
		return resp, err
	}
}

func recoveryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("method", info.FullMethod).
					Msg("Recovered from gRPC panic")
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return next(ctx, req)
	}
}
