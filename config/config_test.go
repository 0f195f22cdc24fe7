package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mimics t.Chdir (added in Go 1.24) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadBuiltinDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	d := Load()

	assert.Equal(t, "gcc", d.Compiler)
	assert.Equal(t, 5, d.Runs)
	assert.Equal(t, "output", d.OutputDir)
	assert.False(t, d.Quiet)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "compiler: clang\nruns: 11\noutput: reports\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ccstress.yaml"), []byte(yaml), 0o644))

	chdir(t, dir)

	d := Load()

	assert.Equal(t, "clang", d.Compiler)
	assert.Equal(t, 11, d.Runs)
	assert.Equal(t, "reports", d.OutputDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ccstress.yaml"),
		[]byte("compiler: clang\n"), 0o644))

	chdir(t, dir)
	t.Setenv("CCSTRESS_COMPILER", "gcc")
	t.Setenv("CCSTRESS_RUNS", "9")

	d := Load()

	assert.Equal(t, "gcc", d.Compiler)
	assert.Equal(t, 9, d.Runs)
}
