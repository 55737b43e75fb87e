// Package config defines the format-agnostic scenario model: the field to
// build, how to seed it and how long to run it, along with the Loader
// interface that concrete formats implement.
//
// The `config.Scenario` is the single source of truth for the `app` and
// `sim` packages. The HCL implementation lives in a separate package.
package config
