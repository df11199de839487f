package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// mapData is the JSON payload handed to the browser script. Field order is
// fixed by the struct, so the encoding is byte-stable.
type mapData struct {
	Center [2]float64  `json:"center"`
	Zoom   float64     `json:"zoom"`
	Tiles  []TileLayer `json:"tiles"`
	Layers []layerData `json:"layers"`
}

type layerData struct {
	Name     string           `json:"name"`
	Visible  bool             `json:"visible"`
	Features []domain.Feature `json:"features"`
	Boundary *boundaryData    `json:"boundary,omitempty"`
}

type boundaryData struct {
	GeoJSON json.RawMessage     `json:"geojson"`
	Style   domain.OverlayStyle `json:"style"`
}

type page struct {
	Title   string
	Legends domain.LegendCatalog
	Data    mapData
}

// Serialize renders the document as a self-contained HTML page. Equal
// documents always produce identical bytes.
func (d *Document) Serialize() ([]byte, error) {
	data := mapData{
		Center: d.View.Center,
		Zoom:   d.View.Zoom,
		Tiles:  d.Tiles,
		Layers: make([]layerData, 0, len(d.Layers)),
	}
	for _, l := range d.Layers {
		ld := layerData{Name: l.Name, Visible: l.Visible, Features: l.Features}
		if ld.Features == nil {
			ld.Features = []domain.Feature{}
		}
		if l.Boundary != nil {
			ld.Boundary = &boundaryData{GeoJSON: l.Boundary.GeoJSON, Style: l.Boundary.Style}
		}
		data.Layers = append(data.Layers, ld)
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, page{Title: d.Title, Legends: d.Legends, Data: data}); err != nil {
		return nil, fmt.Errorf("execute map template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTo serializes the document into w. Nothing is written if rendering
// fails.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out, err := d.Serialize()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(out)
	return int64(n), err
}
