package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

// LoadPalette returns the built-in palette when path is empty, otherwise the
// palette read from the YAML file at path.
func LoadPalette(path string) (domain.Palette, error) {
	if path == "" {
		return domain.DefaultPalette(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Palette{}, fmt.Errorf("read palette file: %w", err)
	}
	p, err := ParsePalette(data)
	if err != nil {
		return domain.Palette{}, fmt.Errorf("palette file %s: %w", path, err)
	}
	return p, nil
}

// ParsePalette decodes and validates a YAML palette. Unknown keys are rejected.
func ParsePalette(data []byte) (domain.Palette, error) {
	var p domain.Palette
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return domain.Palette{}, fmt.Errorf("parse palette: %w", err)
	}
	if err := p.Validate(); err != nil {
		return domain.Palette{}, err
	}
	return p, nil
}
