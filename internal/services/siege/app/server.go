package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	platformgrpc "github.com/louisbranch/catapult/internal/platform/grpc"
	"github.com/louisbranch/catapult/internal/platform/timeouts"
	httpapi "github.com/louisbranch/catapult/internal/services/siege/api/http"
	"github.com/louisbranch/catapult/internal/siege/game"
)

// HealthService is the service name reported SERVING by the health server.
const HealthService = "siege.v1.SiegeService"

// Config controls how the siege server listens and keeps sessions.
type Config struct {
	HTTPAddr      string
	GRPCAddr      string
	MaxConns      int
	SessionSecret string
	SessionTTL    time.Duration
	Seed          int64
	SecureCookies bool
}

// Server hosts the siege service.
type Server struct {
	httpListener net.Listener
	httpServer   *http.Server
	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
	store        *game.Store
	sweepEvery   time.Duration
}

// New creates a configured server with both listeners bound.
func New(cfg Config) (*Server, error) {
	store := game.NewStore(game.StoreConfig{TTL: cfg.SessionTTL, Seed: cfg.Seed})
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = game.DefaultSessionTTL
	}
	signer, err := httpapi.NewSessionSigner(cfg.SessionSecret, ttl, nil)
	if err != nil {
		return nil, err
	}
	handler, err := httpapi.NewHandler(httpapi.Config{
		Store:         store,
		Signer:        signer,
		SecureCookies: cfg.SecureCookies,
	})
	if err != nil {
		return nil, err
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}
	if cfg.MaxConns > 0 {
		httpListener = netutil.LimitListener(httpListener, cfg.MaxConns)
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpListener.Close()
		return nil, fmt.Errorf("listen on grpc addr %s: %w", cfg.GRPCAddr, err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := platformgrpc.NewHealthServer(grpcServer, HealthService)

	return &Server{
		httpListener: httpListener,
		httpServer: &http.Server{
			Handler:           handler.Routes(),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		grpcListener: grpcListener,
		grpcServer:   grpcServer,
		health:       healthServer,
		store:        store,
		sweepEvery:   ttl / 4,
	}, nil
}

// HTTPAddr returns the bound HTTP address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound gRPC address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Store returns the session store backing the API.
func (s *Server) Store() *game.Store {
	return s.store
}

// Run creates and serves a siege server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve runs both listeners and the session sweeper until ctx ends or either
// listener fails.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.store.RunSweeper(serverCtx, s.sweepEvery)

	log.Printf("siege gRPC health listening at %v", s.grpcListener.Addr())
	grpcErr := make(chan error, 1)
	go func() {
		grpcErr <- s.grpcServer.Serve(s.grpcListener)
	}()

	log.Printf("siege HTTP API listening at %v", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	handleGRPC := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
	shutdownGRPC := func() {
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	shutdownHTTP := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("siege HTTP shutdown: %v", err)
		}
	}

	select {
	case <-ctx.Done():
		shutdownHTTP()
		<-httpErr
		shutdownGRPC()
		return handleGRPC(<-grpcErr)
	case err := <-grpcErr:
		shutdownHTTP()
		<-httpErr
		return handleGRPC(err)
	case err := <-httpErr:
		shutdownGRPC()
		if handled := handleGRPC(<-grpcErr); handled != nil {
			return handled
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}
