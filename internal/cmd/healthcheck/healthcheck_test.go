package healthcheck

import (
	"context"
	"errors"
	"flag"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	platformgrpc "github.com/louisbranch/catapult/internal/platform/grpc"
	server "github.com/louisbranch/catapult/internal/services/siege/app"
)

func startHealthServer(t *testing.T) (string, *health.Server) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	healthServer := platformgrpc.NewHealthServer(grpcServer, server.HealthService)
	go func() {
		_ = grpcServer.Serve(listener)
	}()
	t.Cleanup(func() {
		grpcServer.Stop()
		_ = listener.Close()
	})
	return listener.Addr().String(), healthServer
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("healthcheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8081" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected default timeout 5s, got %s", cfg.Timeout)
	}
	if cfg.Service != server.HealthService {
		t.Fatalf("expected default service %q, got %q", server.HealthService, cfg.Service)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SIEGE_HEALTH_ADDR", "env-addr:1")
	fs := flag.NewFlagSet("healthcheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-timeout", "1s", "-service", ""})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "env-addr:1" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.Timeout != time.Second || cfg.Service != "" {
		t.Fatalf("expected flag overrides, got %+v", cfg)
	}
}

func TestRunReportsServing(t *testing.T) {
	addr, _ := startHealthServer(t)
	err := Run(context.Background(), Config{Addr: addr, Timeout: 2 * time.Second, Service: server.HealthService})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunFailsWhenNotServing(t *testing.T) {
	addr, healthServer := startHealthServer(t)
	healthServer.SetServingStatus(server.HealthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	err := Run(context.Background(), Config{Addr: addr, Timeout: 300 * time.Millisecond, Service: server.HealthService})
	var dialErr *platformgrpc.DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("error = %v, want *DialError", err)
	}
	if dialErr.Stage != platformgrpc.DialStageHealth {
		t.Fatalf("stage = %s, want %s", dialErr.Stage, platformgrpc.DialStageHealth)
	}
}
