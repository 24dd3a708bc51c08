package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigurationJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"C": 0.9, "Threshold": 0.001, "Graph": "corpus0"}`)

	config, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		C:         0.9,
		Threshold: 0.001,
		Samples:   10000,
		Walkers:   1,
		Graph:     "corpus0",
	}, config)
}

func TestLoadConfigurationYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "Samples: 500\nWalkers: 4\nOutput: ranks.txt\n")
	t.Chdir(dir)

	config, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, 0.85, config.C)
	assert.Equal(t, 500, config.Samples)
	assert.Equal(t, 4, config.Walkers)
	assert.Equal(t, "ranks.txt", config.Output)
}

func TestLoadConfigurationMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := LoadConfiguration("")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfiguration("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigurationInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfiguration(writeFile(t, dir, "broken.yaml", "C: [0.85\n"))
	assert.ErrorContains(t, err, "parse")

	_, err = LoadConfiguration(writeFile(t, dir, "values.yaml", "C: 1.5\nSamples: -1\n"))
	assert.ErrorContains(t, err, "C must be in (0, 1)")
	assert.ErrorContains(t, err, "Samples must be positive")
}
