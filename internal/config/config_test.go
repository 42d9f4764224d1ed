package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDBPathOverride(t *testing.T) {
	t.Setenv("MEM_DB", "")

	got, err := ResolveDBPath("custom.db", false)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "custom.db", filepath.Base(got))
}

func TestResolveDBPathOverrideTilde(t *testing.T) {
	t.Setenv("MEM_DB", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolveDBPath("~/mem.db", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "mem.db"), got)
}

func TestResolveDBPathEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("MEM_DB", want)

	got, err := ResolveDBPath("", false)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveDBPathOverrideBeatsEnv(t *testing.T) {
	t.Setenv("MEM_DB", "/somewhere/else.db")

	got, err := ResolveDBPath("/explicit/flag.db", false)
	require.NoError(t, err)
	assert.Equal(t, "/explicit/flag.db", got)
}

func TestResolveDBPathGlobal(t *testing.T) {
	t.Setenv("MEM_DB", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolveDBPath("", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mem", "memory.db"), got)
}

func TestResolveDBPathLocal(t *testing.T) {
	t.Setenv("MEM_DB", "")
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".mem"), 0o755))
	t.Chdir(dir)

	got, err := ResolveDBPath("", false)
	require.NoError(t, err)

	// TempDir may sit behind a symlink; compare resolved paths.
	want, err := filepath.EvalSymlinks(filepath.Join(dir, ".mem"))
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	require.NoError(t, err)
	assert.Equal(t, want, gotDir)
	assert.Equal(t, "memory.db", filepath.Base(got))
}

func TestResolveDBPathFallsBackToGlobal(t *testing.T) {
	t.Setenv("MEM_DB", "")
	t.Chdir(t.TempDir())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolveDBPath("", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mem", "memory.db"), got)
}

func TestEnsureDBDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "memory.db")
	require.NoError(t, EnsureDBDir(dbPath))

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestHasLocalDB(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	assert.False(t, HasLocalDB())

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".mem"), 0o755))
	assert.True(t, HasLocalDB())
}
