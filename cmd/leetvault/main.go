// leetvault - LeetCode history as a local Markdown vault
//
// A CLI tool that mirrors your solved LeetCode history into a local vault
// of Markdown notes: one note per problem, topic hub cross-links, and a
// tabular progress index. The vault opens in Obsidian or any Markdown tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/leetvault/internal/cli"
	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open the state database for the persistent tracking ID
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	var telemetryClient telemetry.Client
	if cfg.Telemetry.Enabled {
		telemetryClient = telemetry.New(database)
	} else {
		telemetryClient = telemetry.NewNoop()
	}
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
