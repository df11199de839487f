package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// DimensionKey names a categorical attribute of a StudyRecord.
type DimensionKey string

// Category dimensions backed by StudyRecord fields.
const (
	DimDataAvailability DimensionKey = "dataAvailability"
	DimTracers          DimensionKey = "tracers"
	DimIsotopeMethod    DimensionKey = "isotopeMethod"
	DimCompartment      DimensionKey = "compartment"
)

// FallbackColor is returned for a dimension the palette does not define.
const FallbackColor = "black"

// colorRe accepts hex colors and CSS color keywords, the forms that survive
// HTML template CSS escaping unchanged.
var colorRe = regexp.MustCompile(`^(#[0-9A-Fa-f]{3,8}|[A-Za-z]+)$`)

// Category maps one exact field value to a color and its legend label.
type Category struct {
	Match string `yaml:"match"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// Swatch is a legend label with its color.
type Swatch struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// LegendPosition pins a legend block to the bottom-left corner, in pixels.
type LegendPosition struct {
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// Dimension is the closed category table for one attribute. Values not listed
// in Categories fall to Default; they never extend the table.
type Dimension struct {
	Key        DimensionKey   `yaml:"key"`
	Layer      string         `yaml:"layer"`
	Title      string         `yaml:"title"`
	Categories []Category     `yaml:"categories"`
	Default    Swatch         `yaml:"default"`
	Legend     LegendPosition `yaml:"legend"`
}

// ColorFor returns the color of the first category whose Match equals value
// exactly, or the dimension default.
func (d Dimension) ColorFor(value string) string {
	for _, c := range d.Categories {
		if c.Match == value {
			return c.Color
		}
	}
	return d.Default.Color
}

// Palette is the ordered set of category dimensions. Order drives both layer
// order and legend order.
type Palette struct {
	Dimensions []Dimension `yaml:"dimensions"`
}

// Dimension looks up a dimension by key.
func (p Palette) Dimension(key DimensionKey) (Dimension, bool) {
	for _, d := range p.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return Dimension{}, false
}

// ColorFor maps a category value to its display color. Unknown dimensions
// yield FallbackColor.
func (p Palette) ColorFor(key DimensionKey, value string) string {
	d, ok := p.Dimension(key)
	if !ok {
		return FallbackColor
	}
	return d.ColorFor(value)
}

// Validate checks that every dimension is backed by a record field, has a
// unique layer name, and carries a usable color for each category and its
// default.
func (p Palette) Validate() error {
	if len(p.Dimensions) == 0 {
		return errors.New("palette: no dimensions defined")
	}

	keys := make(map[DimensionKey]bool, len(p.Dimensions))
	layers := map[string]bool{DetailLayer: true, BoundaryLayer: true}
	for _, d := range p.Dimensions {
		if _, ok := (StudyRecord{}).DimensionValue(d.Key); !ok {
			return fmt.Errorf("palette: unknown dimension %q", d.Key)
		}
		if keys[d.Key] {
			return fmt.Errorf("palette: duplicate dimension %q", d.Key)
		}
		keys[d.Key] = true

		if d.Layer == "" {
			return fmt.Errorf("palette: dimension %q has no layer name", d.Key)
		}
		if layers[d.Layer] {
			return fmt.Errorf("palette: layer name %q is already in use", d.Layer)
		}
		layers[d.Layer] = true

		if d.Default.Color == "" {
			return fmt.Errorf("palette: dimension %q has no default color", d.Key)
		}
		if !colorRe.MatchString(d.Default.Color) {
			return fmt.Errorf("palette: dimension %q default color %q is not a hex color or name", d.Key, d.Default.Color)
		}
		for _, c := range d.Categories {
			if c.Color == "" {
				return fmt.Errorf("palette: dimension %q category %q has no color", d.Key, c.Match)
			}
			if !colorRe.MatchString(c.Color) {
				return fmt.Errorf("palette: dimension %q category %q color %q is not a hex color or name", d.Key, c.Match, c.Color)
			}
		}
	}
	return nil
}

// DefaultPalette returns the category tables of the groundwater survey sheet.
// Each call returns a fresh copy.
func DefaultPalette() Palette {
	return Palette{Dimensions: []Dimension{
		{
			Key:   DimDataAvailability,
			Layer: "Data_Availability",
			Title: "Data Availability",
			Categories: []Category{
				{Match: "Yes (e.g., in repository or paper)", Label: "Yes", Color: "#009E73"},
				{Match: "Partly (upon request authors)", Label: "Partly (upon request authors)", Color: "#E69F00"},
			},
			Default: Swatch{Label: "No", Color: "#662a5a"},
			Legend:  LegendPosition{Bottom: 10, Left: 380},
		},
		{
			Key:   DimTracers,
			Layer: "Tracers",
			Title: "Tracers",
			Categories: []Category{
				{Match: "Stable water isotopes", Label: "Stable water isotopes", Color: "#009E73"},
				{Match: "Tritium", Label: "Tritium", Color: "orange"},
				{Match: "Electrical Conductivity", Label: "Electrical Conductivity", Color: "#56B4E9"},
			},
			Default: Swatch{Label: "Multiple", Color: "black"},
			Legend:  LegendPosition{Bottom: 10, Left: 130},
		},
		{
			Key:   DimIsotopeMethod,
			Layer: "Isotope_Method",
			Title: "Isotope Method",
			Categories: []Category{
				{Match: "Laser Absorption Spectroscopy", Label: "Laser Absorption Spectroscopy", Color: "#009E73"},
				{Match: "Isotope Ratio Mass Spectrometry", Label: "Isotope Ratio Mass Spectrometry", Color: "#E69F00"},
			},
			Default: Swatch{Label: "Other", Color: "#56B4E9"},
			Legend:  LegendPosition{Bottom: 10, Left: 255},
		},
		{
			Key:   DimCompartment,
			Layer: "GW_Compartment",
			Title: "GW Compartment",
			Categories: []Category{
				{Match: "Springs", Label: "Springs", Color: "#009E73"},
				{Match: "Deep Ground Water", Label: "Deep Ground Water", Color: "orange"},
				{Match: "Shallow Ground Water", Label: "Shallow Ground Water", Color: "#505555"},
			},
			Default: Swatch{Label: "Other", Color: "#662a5a"},
			Legend:  LegendPosition{Bottom: 10, Left: 5},
		},
	}}
}
