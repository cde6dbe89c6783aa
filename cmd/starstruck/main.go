// Package main is the entry point for Starstruck.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/stattek/starstruck/internal/entity"
	"github.com/stattek/starstruck/internal/game"
	"github.com/stattek/starstruck/internal/gamedata"
	"github.com/stattek/starstruck/internal/telemetry"
	"github.com/stattek/starstruck/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_STARSTRUCK_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatalf("starstruck needs an interactive terminal")
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	stdr.SetVerbosity(cfg.LogVerbosity)
	logger := stdr.New(log.New(logFile, "", log.LstdFlags)).WithName("starstruck")
	logger.Info("starting", "seed", cfg.Seed, "class", cfg.ClassID, "historyLimit", cfg.HistoryLimit)

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, logger.WithName("otel"))
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	catalogs, err := gamedata.LoadCatalogs()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}
	class := catalogs.Classes.GetByID(cfg.ClassID)
	if class == nil {
		log.Fatalf("Unknown class %q (available: %s)", cfg.ClassID, classIDs(catalogs.Classes))
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	// One random source per session; restarts continue the same stream.
	rng := cfg.NewRand()
	newEncounter := func() *game.Encounter {
		return game.New(catalogs, entity.NewPlayerFromClass(cfg.PlayerName, class), nil,
			game.WithRand(rng),
			game.WithLogger(logger.WithName("encounter")),
			game.WithHistoryLimit(cfg.HistoryLimit),
		)
	}

	app := ui.NewApp(screen, newEncounter, logger)
	runErr := app.Run(ctx)
	screen.Close()

	logSummary(logger, app.Encounter())
	if runErr != nil {
		log.Fatalf("Game error: %v", runErr)
	}
}

func logSummary(logger logr.Logger, e *game.Encounter) {
	p := e.Player()
	logger.Info("session over", "state", e.State().String(), "level", p.GetLevel(),
		"kills", e.Kills(), "turns", e.TurnCount())
}

func classIDs(classes *gamedata.ClassRegistry) string {
	ids := make([]string, 0, len(classes.All()))
	for _, c := range classes.All() {
		ids = append(ids, c.ID)
	}
	return strings.Join(ids, ", ")
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_STARSTRUCK_API_KEY")
	dataset := os.Getenv("HONEYCOMB_STARSTRUCK_DATASET")
	if dataset == "" {
		dataset = "starstruck" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
