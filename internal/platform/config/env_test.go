package config

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

type envTestConfig struct {
	Port int           `env:"SIEGE_TEST_PORT" envDefault:"8081"`
	TTL  time.Duration `env:"SIEGE_TEST_TTL" envDefault:"2h"`
	Seed int64         `env:"SIEGE_TEST_SEED"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 8081 || cfg.TTL != 2*time.Hour || cfg.Seed != 0 {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("SIEGE_TEST_TTL", "15m")
	t.Setenv("SIEGE_TEST_SEED", "42")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TTL != 15*time.Minute || cfg.Seed != 42 {
		t.Fatalf("cfg = %+v, want ttl 15m and seed 42", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SIEGE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvExplicitEnvironmentIgnoresProcessEnv(t *testing.T) {
	t.Setenv("SIEGE_TEST_PORT", "not-an-int")

	var cfg envTestConfig
	if err := parseEnv(&cfg, env.Options{Environment: map[string]string{"SIEGE_TEST_SEED": "7"}}); err != nil {
		t.Fatalf("parse env with: %v", err)
	}
	if cfg.Port != 8081 || cfg.Seed != 7 {
		t.Fatalf("cfg = %+v, want default port and seed 7", cfg)
	}
}
