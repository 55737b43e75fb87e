package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/bitlife/internal/config"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	scenario *config.Scenario
}

func (l staticLoader) Load(context.Context, ...string) (*config.Scenario, error) {
	return l.scenario, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	loader := staticLoader{scenario: &config.Scenario{
		Rows:    4,
		Columns: 4,
		Run:     config.Run{Generations: 7, Stepper: config.StepperSequential},
	}}
	cfg, err := NewConfig(Config{ScenarioPath: "in-memory", Generations: Unset, Workers: Unset})
	require.NoError(t, err)
	return NewApp(&bytes.Buffer{}, cfg, loader)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a := newTestApp(t)
	srv := httptest.NewServer(a.healthMux())
	t.Cleanup(srv.Close)

	// --- Act & Assert ---
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var status map[string]int
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&status))
	require.Equal(t, map[string]int{"generation": 0, "generations": 7}, status)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{Generations: Unset, Workers: Unset})
	require.ErrorContains(t, err, "scenario path or a snapshot")

	_, err = NewConfig(Config{LoadPath: "x", Generations: Unset, Workers: Unset, HealthcheckPort: -1})
	require.ErrorContains(t, err, "healthcheck port")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger("bogus", "text", &buf).Info("Fallback level.")
	require.Contains(t, buf.String(), "level=INFO")
}
