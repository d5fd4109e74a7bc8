// Package main provides a CLI for Sanity check balancing sweeps.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	sanitycmd "github.com/louisbranch/sanity/internal/cmd/sanity"
	platformcmd "github.com/louisbranch/sanity/internal/platform/cmd"
	"github.com/louisbranch/sanity/internal/platform/config"
)

func main() {
	cfg, err := sanitycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitErr("Error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := platformcmd.RunOptions{Logger: log.New(os.Stderr, "", 0)}
	if err := platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceSanity, opts, func(ctx context.Context) error {
		return sanitycmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	}); err != nil {
		config.ExitErr("Error", err)
	}
}
