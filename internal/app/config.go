package app

import "errors"

// Unset marks a numeric override that should keep the scenario's value.
const Unset = -1

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // hcl file or directory
	LoadPath     string // snapshot to start from

	// Overrides for the scenario's run block.
	Generations int
	Stepper     string
	Workers     int
	OutPath     string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" && cfg.LoadPath == "" {
		return nil, errors.New("a scenario path or a snapshot to load is required")
	}
	if cfg.Generations < Unset {
		return nil, errors.New("generations must not be negative")
	}
	if cfg.Workers < Unset {
		return nil, errors.New("workers must not be negative")
	}
	if cfg.HealthcheckPort < 0 {
		return nil, errors.New("healthcheck port must not be negative")
	}

	return &cfg, nil
}
