package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"tickshare"}, args...))
	return out.String(), err
}

func TestRunWithFlags(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.csv")
	out, err := runApp(t,
		"--config", filepath.Join(t.TempDir(), "none.yml"),
		"--max-ticks", "2",
		"--threshold", "4",
		"--tick", "1ms",
		"--main-interval", "1ms",
		"--trace", trace,
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 4)
	assert.FileExists(t, trace)
}

func TestRunWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickshare.yml")
	require.NoError(t, os.WriteFile(path, []byte("tick_ms: 1\nmain_ms: 1\nmax_ticks: 1\nthreshold: 2\n"), 0o644))

	out, err := runApp(t, "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Main: Shared Count = ")
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, err := runApp(t,
		"--config", filepath.Join(t.TempDir(), "none.yml"),
		"--max-ticks", "-1",
	)
	require.Error(t, err)

	_, err = runApp(t,
		"--config", filepath.Join(t.TempDir(), "none.yml"),
		"--tick", "100us",
	)
	require.Error(t, err)
}

func TestRunRejectsFractionalMilliseconds(t *testing.T) {
	for _, flag := range []string{"--tick", "--main-interval"} {
		_, err := runApp(t,
			"--config", filepath.Join(t.TempDir(), "none.yml"),
			"--max-ticks", "1",
			"--threshold", "1",
			flag, "1500us",
		)
		require.ErrorContains(t, err, "whole number of milliseconds", flag)
	}
}

func TestRunRejectsUnknownLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickshare.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	_, err := runApp(t, "-c", path)
	require.Error(t, err)
}
