// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/catapult/internal/platform/cmd"
	mcpservice "github.com/louisbranch/catapult/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr   string        `env:"SIEGE_MCP_HTTP_ADDR"   envDefault:"localhost:8082"`
	Transport  string        `env:"SIEGE_MCP_TRANSPORT"   envDefault:"stdio"`
	Locale     string        `env:"SIEGE_MCP_LOCALE"      envDefault:"en-US"`
	SessionTTL time.Duration `env:"SIEGE_MCP_SESSION_TTL" envDefault:"24h"`
	Seed       int64         `env:"SIEGE_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale of tool error messages")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Fixed random seed for the encounter (0 draws one)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, err := mcpservice.ParseTransport(cfg.Transport); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	transport, err := mcpservice.ParseTransport(cfg.Transport)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport:  transport,
			HTTPAddr:   cfg.HTTPAddr,
			Locale:     cfg.Locale,
			Seed:       cfg.Seed,
			SessionTTL: cfg.SessionTTL,
		})
	})
}
