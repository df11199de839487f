package htmlfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "GW_Study_Map.html")
	w := NewWriter(path, slog.Default())

	require.NoError(t, w.Write(context.Background(), []byte("<html>v1</html>")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWrite_ReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.html")
	w := NewWriter(path, slog.Default())

	require.NoError(t, w.Write(context.Background(), []byte("first")))
	require.NoError(t, w.Write(context.Background(), []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "map.html", entries[0].Name())
}

func TestWrite_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.html")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter(path, slog.Default()).Write(ctx, []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestWrite_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "map.html"), 0o755))

	err := NewWriter(filepath.Join(dir, "map.html"), slog.Default()).Write(context.Background(), []byte("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")
}
