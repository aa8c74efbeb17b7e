// Package grpc holds the gRPC readiness plumbing shared by board processes.
package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/personnel.board/internal/platform/timeouts"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const maxHealthBackoff = time.Second

// NewHealthServer builds a traced gRPC server exposing the standard health
// service. Every named service, plus the empty overall name, starts SERVING.
func NewHealthServer(services ...string) (*gogrpc.Server, *health.Server) {
	grpcServer := gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, name := range services {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return grpcServer, healthServer
}

// WaitForHealth blocks until the health check for service reports SERVING or
// ctx ends. Retries back off from 200ms up to one second.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := grpc_health_v1.NewHealthClient(conn)
	backoff := 200 * time.Millisecond
	for {
		callCtx, cancel := context.WithTimeout(ctx, timeouts.HealthProbe)
		response, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		switch {
		case err == nil && response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("health service=%q status=SERVING", service)
			return nil
		case err != nil:
			logf("health service=%q waiting err=%v", service, err)
		default:
			logf("health service=%q waiting status=%s", service, response.GetStatus())
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxHealthBackoff)
	}
}
