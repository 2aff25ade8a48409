package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	siegecmd "github.com/louisbranch/catapult/internal/cmd/siege"
)

func main() {
	cfg, err := siegecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SIEGE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := siegecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
