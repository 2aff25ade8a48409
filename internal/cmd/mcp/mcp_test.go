package mcp

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8082" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("expected default locale en-US, got %q", cfg.Locale)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl 24h, got %s", cfg.SessionTTL)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SIEGE_MCP_HTTP_ADDR", "env-http")
	t.Setenv("SIEGE_MCP_LOCALE", "es-ES")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-http", "-transport", "http", "-seed", "9"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.Locale != "es-ES" {
		t.Fatalf("expected env locale, got %q", cfg.Locale)
	}
	if cfg.Seed != 9 {
		t.Fatalf("expected flag seed, got %d", cfg.Seed)
	}
}

func TestParseConfigRejectsUnknownTransport(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-transport", "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}
