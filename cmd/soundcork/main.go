// Soundcork - stereo group pairing service for SoundTouch speakers
//
// This is the main entry point for the Soundcork service. It exposes the
// device-facing marge routes and the operator-facing service routes over a
// filesystem-backed account/device/group data tree, and drives the
// speakers' own pairing protocol on their fixed control port.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/soundcork/soundcork/internal/api"
	"github.com/soundcork/soundcork/internal/box"
	"github.com/soundcork/soundcork/internal/group"
	"github.com/soundcork/soundcork/internal/infrastructure/config"
	"github.com/soundcork/soundcork/internal/infrastructure/logging"
	"github.com/soundcork/soundcork/internal/registry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Soundcork",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Data tree must exist before anything can be served from it
	if err := os.MkdirAll(cfg.Store.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	log.Info("data directory ready", "path", cfg.Store.DataDir)

	// Wire the group subsystem: store, registry, box client, orchestrator
	store := group.NewStore(cfg.Store.DataDir, log)
	deviceRegistry := registry.New(cfg.Store.DataDir, cfg.Devices.EligibleType, log)
	boxClient := box.New(box.Config{
		Port:    cfg.Box.Port,
		Timeout: cfg.GetBoxTimeout(),
	}, log)
	orchestrator := group.NewOrchestrator(store, deviceRegistry, boxClient, log)

	// Start the HTTP API server
	server, err := api.New(api.Deps{
		Config:       cfg.API,
		Logger:       log,
		Orchestrator: orchestrator,
		Registry:     deviceRegistry,
		Version:      version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Soundcork stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SOUNDCORK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SOUNDCORK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
