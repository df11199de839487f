// Package htmlfile writes the rendered map to disk.
package htmlfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer replaces the output file atomically: readers see either the previous
// document or the complete new one.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Write stores doc at the writer's path, creating parent directories.
func (w *Writer) Write(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".map-*.html")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	if _, err := tmp.Write(doc); err != nil {
		cleanup()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace output: %w", err)
	}

	w.logger.Info("map written", "path", w.path, "bytes", len(doc))
	return nil
}
