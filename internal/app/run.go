package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/bitlife/internal/ctxlog"
)

// Run builds the initial field and advances it through the scenario's
// generations. Cancelling ctx stops the run between generations.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	f, err := buildField(ctx, a.scenario)
	if err != nil {
		return fmt.Errorf("failed to build field: %w", err)
	}

	a.logger.Info("🚀 Starting simulation...",
		"rows", f.Rows(),
		"columns", f.Columns(),
		"generations", a.scenario.Run.Generations,
		"stepper", a.scenario.Run.Stepper,
		"population", f.Population(),
	)
	res, err := a.runner.Run(ctx, f)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	a.logger.Info("🏁 Simulation finished.",
		"generations", res.Generations,
		"population", res.Population,
		"elapsed", res.Elapsed,
	)

	a.logger.Debug("App.Run method finished.")
	return nil
}
