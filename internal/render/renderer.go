package render

import (
	"context"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

// Renderer assembles layers into a Document with fixed legends, title, view,
// and basemaps, then serializes it.
type Renderer struct {
	legends domain.LegendCatalog
	title   string
	view    View
	tileIDs []string
}

// NewRenderer creates a Renderer whose legends come from palette p.
func NewRenderer(p domain.Palette, title string, view View, tileIDs []string) *Renderer {
	return &Renderer{
		legends: domain.NewLegendCatalog(p),
		title:   title,
		view:    view,
		tileIDs: tileIDs,
	}
}

// Render returns the HTML bytes for layers.
func (r *Renderer) Render(ctx context.Context, layers []domain.Layer) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := Assemble(layers, r.legends, r.title, r.view, r.tileIDs)
	if err != nil {
		return nil, err
	}
	return doc.Serialize()
}
