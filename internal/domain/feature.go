package domain

import (
	"html"
	"strings"
)

// FeatureKind distinguishes the study-detail marker from the colored
// per-dimension circles.
type FeatureKind string

const (
	KindDetail      FeatureKind = "detail"
	KindCategorical FeatureKind = "categorical"
)

// Fixed styling of the generated markers.
const (
	DetailColor  = "#56B4E9"
	MarkerRadius = 8
)

// Feature is a single renderable point with its encoding and popup.
type Feature struct {
	Kind    FeatureKind `json:"kind"`
	Layer   string      `json:"layer"`
	Lat     float64     `json:"lat"`
	Lon     float64     `json:"lon"`
	Color   string      `json:"color"`
	Radius  int         `json:"radius,omitempty"`
	Popup   string      `json:"popup"`
	Tooltip string      `json:"tooltip,omitempty"`
}

// FeaturesPerRecord is how many features BuildFeatures emits for a record
// under the given palette: one detail marker plus one per dimension.
func FeaturesPerRecord(p Palette) int {
	return 1 + len(p.Dimensions)
}

// BuildFeatures fans a record out into its detail marker followed by one
// categorical marker per palette dimension, in palette order.
func BuildFeatures(rec StudyRecord, p Palette) []Feature {
	features := make([]Feature, 0, FeaturesPerRecord(p))
	features = append(features, Feature{
		Kind:  KindDetail,
		Layer: DetailLayer,
		Lat:   rec.Latitude,
		Lon:   rec.Longitude,
		Color: DetailColor,
		Popup: detailPopup(rec),
	})

	for _, d := range p.Dimensions {
		value, _ := rec.DimensionValue(d.Key)
		features = append(features, Feature{
			Kind:    KindCategorical,
			Layer:   d.Layer,
			Lat:     rec.Latitude,
			Lon:     rec.Longitude,
			Color:   d.ColorFor(value),
			Radius:  MarkerRadius,
			Popup:   html.EscapeString(value),
			Tooltip: value,
		})
	}
	return features
}

// detailPopup assembles the study summary shown by the detail marker. A blank
// DOI still yields a link element, with an empty target.
func detailPopup(rec StudyRecord) string {
	esc := html.EscapeString

	var b strings.Builder
	b.WriteString("<h1>" + esc(rec.Catchment) + "</h1>")
	b.WriteString("<p>OBJECTIVE:</p>" + esc(rec.Objective))
	b.WriteString("<p>KEYWORDS:</p>" + esc(rec.Keywords))
	b.WriteString("<p>DATA_AVAILABILITY and TYPE:</p><ul>" + esc(rec.DataAvailability) + "</ul>")
	b.WriteString(esc(rec.Tracers))
	b.WriteString("<p>COUNTRY, GEOLOGICALSYSTEM, ELEVATION, ISOTOPEMETHOD, TRACERS, MODEL, STUDYLENGTH, SAMPLINGFREQUENCY:</p><ul>")
	for _, v := range []string{
		rec.Country, rec.GeologicalSystem, rec.Elevation, rec.IsotopeMethod,
		rec.Tracers, rec.Model, rec.StudyLength, rec.SamplingFrequency,
	} {
		b.WriteString("<li>" + esc(v) + "</li>")
	}
	b.WriteString("</ul>")
	b.WriteString(`<p>Here is the paper <a href="` + esc(rec.DOI) + `" target="_blank">link</a></p>`)
	return b.String()
}
