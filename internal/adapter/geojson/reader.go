// Package geojson loads the country boundary overlay.
package geojson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var geoJSONTypes = map[string]bool{
	"FeatureCollection":  true,
	"Feature":            true,
	"GeometryCollection": true,
	"Polygon":            true,
	"MultiPolygon":       true,
	"LineString":         true,
	"MultiLineString":    true,
	"Point":              true,
	"MultiPoint":         true,
}

// Reader loads a GeoJSON document from disk and passes it through untouched.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for path. An empty path disables the overlay.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// ReadBoundary returns the compacted document, or nil when no path is set.
func (r *Reader) ReadBoundary(ctx context.Context) (json.RawMessage, error) {
	if r.path == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read boundary: %w", err)
	}
	doc, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("boundary %s: %w", r.path, err)
	}
	r.logger.Debug("boundary overlay read", "path", r.path, "bytes", len(doc))
	return doc, nil
}

// Validate checks that data is a GeoJSON object and returns it compacted.
// Geometry is not inspected.
func Validate(data []byte) (json.RawMessage, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	if head.Type == "" {
		return nil, errors.New("invalid geojson: no type member")
	}
	if !geoJSONTypes[head.Type] {
		return nil, fmt.Errorf("invalid geojson: unknown type %q", head.Type)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	return buf.Bytes(), nil
}
