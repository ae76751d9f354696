package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/regnet-monotone/pkg/export"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		in      string
		a, r    int
		wantErr bool
	}{
		{"2x2", 2, 2, false},
		{"1X3", 1, 3, false},
		{" 0 x 4 ", 0, 4, false},
		{"22", 0, 0, true},
		{"ax2", 0, 0, true},
		{"2x", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, r, err := parseGrid(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.a, a)
			assert.Equal(t, tt.r, r)
		})
	}
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "regnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 4\noutput:\n  dir: results\n  csv: a.csv\n"), 0o644))

	o, fs, err := parseFlags([]string{"-config", path, "-csv", "b.csv", "-grid", "1x1", "-quiet"})
	require.NoError(t, err)
	cfg, err := buildConfig(o, fs)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Equal(t, "b.csv", cfg.Output.CSV)
	assert.Equal(t, "plot.png", cfg.Output.PNG)
	assert.Equal(t, 1, cfg.Grid.MaxActivator)
	assert.Equal(t, 1, cfg.Grid.MaxRepressor)
	assert.False(t, cfg.Output.Terminal)
}

func TestBuildConfig_Errors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	o, fs, err := parseFlags([]string{"-grid", "nope"})
	require.NoError(t, err)
	_, err = buildConfig(o, fs)
	assert.Error(t, err)

	o, fs, err = parseFlags([]string{"-grid", "4611686018427387904x3"})
	require.NoError(t, err)
	_, err = buildConfig(o, fs)
	assert.ErrorContains(t, err, "Grid.MaxActivator")

	o, fs, err = parseFlags([]string{"-s3-bucket", "results"})
	require.NoError(t, err)
	_, err = buildConfig(o, fs)
	assert.ErrorContains(t, err, "S3.Region")

	t.Setenv("LOG_LEVEL", "verbose")
	o, fs, err = parseFlags(nil)
	require.NoError(t, err)
	_, err = buildConfig(o, fs)
	assert.ErrorContains(t, err, "Log.Level")
}

func TestRun_Explain(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-explain", "func65"}, &out))
	assert.Equal(t, "func65 [0 0 1 0 0 0 0 0 0]: monotonic\n", out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"-explain", "func1"}, &out))
	assert.Contains(t, out.String(), "constant function")

	assert.Error(t, run(context.Background(), []string{"-explain", "func513"}, &out))
}

func TestRun_ExportsAndVerifies(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	prom := filepath.Join(dir, "regnet.prom")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-out", dir, "-metrics", prom}, &out))
	assert.Contains(t, out.String(), "Monotonic functions: 18")

	csvPath := filepath.Join(dir, "monotonic_functions.csv")
	columns, rows, err := export.ReadCSV(csvPath)
	require.NoError(t, err)
	assert.Len(t, columns, 9)
	assert.Len(t, rows, 18)

	png, err := os.ReadFile(filepath.Join(dir, "plot.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	metricsText, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metricsText), "regnet_retained_functions 18")

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"-quiet", "-out", t.TempDir(), "-verify", csvPath}, &out))
	assert.Empty(t, out.String())

	err = run(context.Background(), []string{"-quiet", "-grid", "1x1", "-out", t.TempDir(), "-verify", csvPath}, &out)
	assert.ErrorIs(t, err, export.ErrMismatch)
}

func TestRun_Compressed(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-quiet", "-compress", "-png", "", "-out", dir}, &out))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasSuffix(name, export.SnappySuffix))

	_, rows, err := export.ReadCSV(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Len(t, rows, 18)
}
