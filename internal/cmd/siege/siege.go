// Package siege parses siege command flags and starts the game host.
package siege

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	entrypoint "github.com/louisbranch/catapult/internal/platform/cmd"
	server "github.com/louisbranch/catapult/internal/services/siege/app"
)

// Config holds siege command configuration.
type Config struct {
	HTTPAddr      string        `env:"SIEGE_HTTP_ADDR"      envDefault:":8080"`
	GRPCPort      int           `env:"SIEGE_GRPC_PORT"      envDefault:"8081"`
	GRPCAddr      string        `env:"SIEGE_GRPC_ADDR"`
	MaxConns      int           `env:"SIEGE_HTTP_MAX_CONNS" envDefault:"256"`
	SessionSecret string        `env:"SIEGE_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SIEGE_SESSION_TTL"    envDefault:"2h"`
	Seed          int64         `env:"SIEGE_SEED"`
	SecureCookies bool          `env:"SIEGE_SECURE_COOKIES"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP API listen address")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "gRPC health port")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address (overrides -grpc-port)")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "Maximum concurrent HTTP connections (0 for no limit)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle lifetime of a game session")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Fixed random seed for every session (0 draws one per session)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("session ttl must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

// ListenGRPCAddr returns the gRPC listen address.
func (c Config) ListenGRPCAddr() string {
	if c.GRPCAddr != "" {
		return c.GRPCAddr
	}
	return net.JoinHostPort("", strconv.Itoa(c.GRPCPort))
}

// serverConfig maps the command config onto the server config. A missing
// session secret is replaced by a random one.
func (c Config) serverConfig() server.Config {
	secret := c.SessionSecret
	if secret == "" {
		secret = rand.Text()
		log.Printf("SIEGE_SESSION_SECRET not set; sessions will not survive a restart")
	}
	return server.Config{
		HTTPAddr:      c.HTTPAddr,
		GRPCAddr:      c.ListenGRPCAddr(),
		MaxConns:      c.MaxConns,
		SessionSecret: secret,
		SessionTTL:    c.SessionTTL,
		Seed:          c.Seed,
		SecureCookies: c.SecureCookies,
	}
}

// Run starts the siege host.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSiege, func(ctx context.Context) error {
		return server.Run(ctx, cfg.serverConfig())
	})
}
