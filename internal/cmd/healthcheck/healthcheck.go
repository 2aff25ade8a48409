// Package healthcheck probes a running siege host over gRPC health.
package healthcheck

import (
	"context"
	"flag"
	"log"
	"time"

	entrypoint "github.com/louisbranch/catapult/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/catapult/internal/platform/grpc"
	"github.com/louisbranch/catapult/internal/platform/timeouts"
	server "github.com/louisbranch/catapult/internal/services/siege/app"
)

// Config holds healthcheck command configuration.
type Config struct {
	Addr    string        `env:"SIEGE_HEALTH_ADDR" envDefault:"localhost:8081"`
	Timeout time.Duration `env:"SIEGE_HEALTH_TIMEOUT"`
	Service string        `env:"SIEGE_HEALTH_SERVICE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Service: server.HealthService, Timeout: timeouts.HealthCheck}
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "siege gRPC address")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum time to wait for SERVING")
	fs.StringVar(&cfg.Service, "service", cfg.Service, "Health service name (empty checks the whole server)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run waits until the siege host reports SERVING, or fails.
func Run(ctx context.Context, cfg Config) error {
	conn, err := platformgrpc.DialHealthy(ctx, cfg.Addr, cfg.Service, cfg.Timeout, log.Printf, platformgrpc.ClientOptions()...)
	if err != nil {
		return err
	}
	return conn.Close()
}
