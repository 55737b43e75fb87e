package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/bitlife/internal/app"
	"github.com/specialistvlad/bitlife/internal/config"
	"github.com/specialistvlad/bitlife/internal/seed"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bitlife", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
bitlife - Conway's Game of Life on a bit-packed grid.

Usage:
  bitlife [options] [SCENARIO_PATH]

Arguments:
  SCENARIO_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Patterns available to scenarios: %s

Options:
`, strings.Join(seed.Names(), ", "))
		flagSet.PrintDefaults()
	}

	scenarioFlag := flagSet.String("scenario", "", "Path to the scenario file or directory.")
	sFlag := flagSet.String("s", "", "Path to the scenario file or directory (shorthand).")
	loadFlag := flagSet.String("load", "", "Snapshot to start from (.gol, .txt, optionally .zst).")
	generationsFlag := flagSet.Int("generations", app.Unset, "Number of generations to run. -1 keeps the scenario's value.")
	stepperFlag := flagSet.String("stepper", "", "Stepper to use: 'sequential' or 'parallel'. Empty keeps the scenario's value.")
	workersFlag := flagSet.Int("workers", app.Unset, "Concurrent units for the parallel stepper, 0 for one per block. -1 keeps the scenario's value.")
	outFlag := flagSet.String("out", "", "Path to save the final generation to.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *scenarioFlag != "" {
		path = *scenarioFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Scenario path determined.", "path", path)

	if path == "" && *loadFlag == "" {
		slog.Debug("No scenario or snapshot provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	stepper := strings.ToLower(*stepperFlag)
	switch stepper {
	case "", config.StepperSequential, config.StepperParallel:
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid stepper: must be 'sequential' or 'parallel'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ScenarioPath:    path,
		LoadPath:        *loadFlag,
		Generations:     *generationsFlag,
		Stepper:         stepper,
		Workers:         *workersFlag,
		OutPath:         *outFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
