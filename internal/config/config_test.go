package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `
outdir = "build/xml"
jobs = 3
languages = ["java"]
metrics_file = "run.prom"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build/xml", cfg.OutDir)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, 1, cfg.Indent, "unset keys keep defaults")
	assert.Equal(t, []string{"java"}, cfg.Languages)
	assert.Equal(t, "run.prom", cfg.MetricsFile)
	assert.Equal(t, filepath.Join("build/xml", "files.jsonl"), cfg.ExportPath())
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "outdir = \"x\"\ncolour = true\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "indent = -2\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent")
}

func TestLoad_MalformedTOML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "outdir = \n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	empty := t.TempDir()
	cfg, err := Resolve("", empty)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	withFile := t.TempDir()
	writeConfig(t, withFile, "indent = 4\n")
	cfg, err = Resolve("", withFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Indent)

	_, err = Resolve(filepath.Join(empty, "missing.toml"), withFile)
	assert.Error(t, err)
}

func TestExportPath(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Config{}.ExportPath())
	assert.Equal(t, "x.jsonl", Config{OutDir: "out", Export: "x.jsonl"}.ExportPath())
}
