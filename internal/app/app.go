package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/bitlife/internal/config"
	"github.com/specialistvlad/bitlife/internal/ctxlog"
	"github.com/specialistvlad/bitlife/internal/sim"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	scenario   *config.Scenario
	runner     *sim.Runner
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads and resolves
// the scenario, and panics when that fails: a run cannot start without one.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var scenario *config.Scenario
	if cfg.ScenarioPath != "" {
		loaded, err := loader.Load(ctx, cfg.ScenarioPath)
		if err != nil {
			panic(fmt.Errorf("failed to load scenario: %w", err))
		}
		scenario = loaded
		logger.Debug("Scenario loaded.", "path", cfg.ScenarioPath)
	} else {
		scenario = &config.Scenario{
			Run: config.Run{
				Generations: config.DefaultGenerations,
				Stepper:     config.StepperSequential,
			},
		}
	}

	applyOverrides(scenario, cfg)
	if err := scenario.Validate(); err != nil {
		panic(fmt.Errorf("invalid scenario after applying flags: %w", err))
	}
	logger.Debug("Scenario resolved.", "generations", scenario.Run.Generations, "stepper", scenario.Run.Stepper)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		scenario: scenario,
		runner: sim.New(sim.Options{
			Generations:   scenario.Run.Generations,
			Parallel:      scenario.Run.Parallel(),
			Workers:       scenario.Run.Workers,
			SnapshotPath:  scenario.Run.Snapshot,
			SnapshotEvery: scenario.Run.SnapshotEvery,
		}),
	}
}

// applyOverrides lets command-line flags win over the scenario file.
func applyOverrides(s *config.Scenario, cfg *Config) {
	if cfg.LoadPath != "" {
		s.Load = cfg.LoadPath
		s.Rows, s.Columns = 0, 0
	}
	if cfg.Generations != Unset {
		s.Run.Generations = cfg.Generations
	}
	if cfg.Stepper != "" {
		s.Run.Stepper = cfg.Stepper
	}
	if cfg.Workers != Unset {
		s.Run.Workers = cfg.Workers
	}
	if cfg.OutPath != "" {
		s.Run.Snapshot = cfg.OutPath
	}
}

// Scenario returns the resolved scenario. This is primarily for testing.
func (a *App) Scenario() *config.Scenario {
	return a.scenario
}
