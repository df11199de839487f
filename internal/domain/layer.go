package domain

import (
	"encoding/json"
	"fmt"
)

// Fixed layer names outside the palette.
const (
	DetailLayer   = "Study_Information"
	BoundaryLayer = "Europe"
)

// EmptyFeatureCollection stands in for a missing boundary file.
var EmptyFeatureCollection = json.RawMessage(`{"type":"FeatureCollection","features":[]}`)

// OverlayStyle is the Leaflet path style applied to every boundary polygon.
type OverlayStyle struct {
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	DashArray   string  `json:"dashArray"`
	FillOpacity float64 `json:"fillOpacity"`
}

// BoundaryStyle is a hairline dashed outline with a faint fill so the
// polygons never hide the markers drawn over them.
func BoundaryStyle() OverlayStyle {
	return OverlayStyle{
		FillColor:   "#0b1925",
		Color:       "#0b1925",
		Weight:      0.2,
		DashArray:   "1, 1",
		FillOpacity: 0.1,
	}
}

// BoundaryOverlay wraps externally supplied GeoJSON. The geometry is never
// decoded here.
type BoundaryOverlay struct {
	GeoJSON json.RawMessage
	Style   OverlayStyle
}

// Layer is an independently toggleable group on the map. Dimension is set
// only for categorical layers; Boundary only for the boundary layer.
type Layer struct {
	Name      string
	Dimension DimensionKey
	Visible   bool
	Features  []Feature
	Boundary  *BoundaryOverlay
}

// ComposeLayers groups features into the detail layer, one layer per palette
// dimension, and a trailing boundary layer. Feature order within a layer
// follows input order. A feature addressed to no known layer is an error.
func ComposeLayers(features []Feature, boundary json.RawMessage, p Palette) ([]Layer, error) {
	layers := make([]Layer, 0, len(p.Dimensions)+2)
	layers = append(layers, Layer{Name: DetailLayer, Visible: true})
	for _, d := range p.Dimensions {
		layers = append(layers, Layer{Name: d.Layer, Dimension: d.Key, Visible: true})
	}

	index := make(map[string]int, len(layers))
	for i, l := range layers {
		index[l.Name] = i
	}

	for _, f := range features {
		i, ok := index[f.Layer]
		if !ok {
			return nil, fmt.Errorf("compose layers: feature targets unknown layer %q", f.Layer)
		}
		layers[i].Features = append(layers[i].Features, f)
	}

	if len(boundary) == 0 {
		boundary = EmptyFeatureCollection
	}
	layers = append(layers, Layer{
		Name:     BoundaryLayer,
		Visible:  true,
		Boundary: &BoundaryOverlay{GeoJSON: boundary, Style: BoundaryStyle()},
	})
	return layers, nil
}

// CountFeatures returns the number of point features across layers.
func CountFeatures(layers []Layer) int {
	n := 0
	for _, l := range layers {
		n += len(l.Features)
	}
	return n
}
