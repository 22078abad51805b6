package main

import (
	"context"
	"fmt"
	"os"

	"github.com/voltms/voltconsole/internal/config"
	"github.com/voltms/voltconsole/internal/directory"
	"github.com/voltms/voltconsole/internal/identity"
	"github.com/voltms/voltconsole/internal/logger"
	"github.com/voltms/voltconsole/internal/server"
	"github.com/voltms/voltconsole/internal/session"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	// Wire the session core: durable store, identity gateway with 401
	// eviction, one controller for the life of the process.
	store := session.NewOSStore(cfg.Identity.Site)
	gateway := identity.New(cfg.Identity.BaseURL, store, log)
	sessions := session.NewController(gateway, store, log)

	// Rehydrate in the background; guards serve "session pending" until it
	// lands. It runs exactly once.
	go sessions.Rehydrate(context.Background())

	accounts := directory.NewService(log)

	srv := server.New(cfg, sessions, accounts, log, version)

	log.Info().Str("version", version).Str("site", cfg.Identity.Site).Msg("Starting Volt Console...")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
