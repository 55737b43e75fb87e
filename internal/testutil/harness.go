// Package testutil holds helpers shared by tests that exercise the whole
// application: scenario file writers and a harness that runs an App and
// captures its logs.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/bitlife/internal/app"
	"github.com/specialistvlad/bitlife/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes each file, keyed by relative path, under a fresh
// temporary directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunApp builds an App from cfg with the HCL loader and runs it. A panic
// while building the App is reported as Err, like the CLI does.
func RunApp(ctx context.Context, t *testing.T, cfg app.Config) (res *HarnessResult) {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	logs := &SafeBuffer{}
	res = &HarnessResult{}

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("application startup panicked: %v", r)
			res.LogOutput = logs.String()
		}
	}()

	res.App = app.NewApp(logs, &cfg, hcl.NewLoader())
	res.Err = res.App.Run(ctx)
	res.LogOutput = logs.String()
	return res
}
