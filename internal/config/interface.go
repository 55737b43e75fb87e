package config

import "context"

// Loader is the interface for a format-specific scenario loader.
type Loader interface {
	// Load reads every scenario file found under paths and merges them into
	// one validated Scenario.
	Load(ctx context.Context, paths ...string) (*Scenario, error)
}
