package domain

import "fmt"

// Legend is the static key for one category dimension: its categories in
// declaration order followed by the default swatch.
type Legend struct {
	Dimension DimensionKey
	Layer     string
	Title     string
	Entries   []Swatch
	Position  LegendPosition
}

// LegendCatalog holds one Legend per palette dimension, in palette order.
type LegendCatalog []Legend

// NewLegendCatalog derives the legends from the same tables ColorFor reads,
// so a legend can never list a color the markers do not use.
func NewLegendCatalog(p Palette) LegendCatalog {
	catalog := make(LegendCatalog, 0, len(p.Dimensions))
	for _, d := range p.Dimensions {
		entries := make([]Swatch, 0, len(d.Categories)+1)
		for _, c := range d.Categories {
			label := c.Label
			if label == "" {
				label = c.Match
			}
			entries = append(entries, Swatch{Label: label, Color: c.Color})
		}
		entries = append(entries, d.Default)

		catalog = append(catalog, Legend{
			Dimension: d.Key,
			Layer:     d.Layer,
			Title:     d.Title,
			Entries:   entries,
			Position:  d.Legend,
		})
	}
	return catalog
}

// ForDimension returns the legend for a dimension key.
func (c LegendCatalog) ForDimension(key DimensionKey) (Legend, bool) {
	for _, l := range c {
		if l.Dimension == key {
			return l, true
		}
	}
	return Legend{}, false
}

// CheckConsistency fails with *RenderError when a categorical layer has no
// legend, a legend has no layer, or two legends share a screen position.
func (c LegendCatalog) CheckConsistency(layers []Layer) error {
	categorical := make(map[DimensionKey]bool)
	for _, l := range layers {
		if l.Dimension == "" {
			continue
		}
		categorical[l.Dimension] = true
		if _, ok := c.ForDimension(l.Dimension); !ok {
			return &RenderError{Layer: l.Name, Reason: fmt.Sprintf("no legend for dimension %q", l.Dimension)}
		}
	}

	positions := make(map[LegendPosition]string, len(c))
	for _, l := range c {
		if !categorical[l.Dimension] {
			return &RenderError{Layer: l.Layer, Reason: fmt.Sprintf("legend %q has no layer", l.Dimension)}
		}
		if other, taken := positions[l.Position]; taken {
			return &RenderError{Layer: l.Layer, Reason: fmt.Sprintf("legend position shared with %q", other)}
		}
		positions[l.Position] = l.Layer
	}
	return nil
}
