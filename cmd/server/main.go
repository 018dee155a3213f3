// Package main is the entry point for the VocabLoury core.
//
// main() stays minimal by design:
//  1. Load configuration (from .env and the environment)
//  2. Create the logger
//  3. Ensure the data directory exists
//  4. Start the server
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.), which keeps the app testable and its components
// reusable. cmd/server/ follows the Go convention for executable entry
// points — a second binary (say, a migration tool) would get cmd/<name>/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/vocabloury/internal/config"
	"github.com/sakif/vocabloury/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger exists yet — config decides its level
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	// Create the data directory if it doesn't exist (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		DBPath:    cfg.DBPath,
		JWTSecret: cfg.JWTSecret,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
