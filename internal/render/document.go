package render

import (
	"fmt"
	"math"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

// View is the initial map viewport.
type View struct {
	Center [2]float64 // lat, lon
	Zoom   float64
}

// DefaultView centers the map over the Alps at a zoom that shows central Europe.
func DefaultView() View {
	return View{Center: [2]float64{46.81, 8.22}, Zoom: 5.2}
}

// Document is the assembled interactive map: basemaps, overlay layers,
// legends, and title. It is immutable once returned by Assemble.
type Document struct {
	Title   string
	View    View
	Tiles   []TileLayer
	Layers  []domain.Layer
	Legends domain.LegendCatalog
}

// Assemble validates and combines the parts of a map document. It fails with
// *domain.RenderError when layers and legends disagree, layer names collide,
// or a base tile id is unknown.
func Assemble(layers []domain.Layer, legends domain.LegendCatalog, title string, view View, tileIDs []string) (*Document, error) {
	if len(layers) == 0 {
		return nil, &domain.RenderError{Reason: "no layers to render"}
	}

	names := make(map[string]bool, len(layers))
	for _, l := range layers {
		if names[l.Name] {
			return nil, &domain.RenderError{Layer: l.Name, Reason: "duplicate layer name"}
		}
		names[l.Name] = true
	}

	if err := legends.CheckConsistency(layers); err != nil {
		return nil, err
	}

	tiles, err := LookupTiles(tileIDs)
	if err != nil {
		return nil, &domain.RenderError{Reason: err.Error()}
	}
	if len(tiles) == 0 {
		return nil, &domain.RenderError{Reason: "no base tiles configured"}
	}

	if !finite(view.Zoom) || !finite(view.Center[0]) || !finite(view.Center[1]) ||
		view.Zoom < 0 || view.Center[0] < -90 || view.Center[0] > 90 || view.Center[1] < -180 || view.Center[1] > 180 {
		return nil, &domain.RenderError{Reason: fmt.Sprintf("invalid view %v @ %g", view.Center, view.Zoom)}
	}

	return &Document{
		Title:   title,
		View:    view,
		Tiles:   tiles,
		Layers:  layers,
		Legends: legends,
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
