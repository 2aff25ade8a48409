package main

import (
	"context"
	"flag"
	"log"
	"os"

	healthcheckcmd "github.com/louisbranch/catapult/internal/cmd/healthcheck"
	"github.com/louisbranch/catapult/internal/platform/config"
)

func main() {
	cfg, err := healthcheckcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[HEALTHCHECK] ")

	if err := healthcheckcmd.Run(context.Background(), cfg); err != nil {
		config.Exitf("unhealthy: %v", err)
	}
}
