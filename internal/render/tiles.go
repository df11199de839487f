package render

import (
	"fmt"
	"strings"
)

// TileLayer is a basemap the user can switch to.
type TileLayer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

const (
	osmAttribution    = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	cartoAttribution  = osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`
	stamenAttribution = `&copy; <a href="https://stadiamaps.com/">Stadia Maps</a> &copy; <a href="https://stamen.com/">Stamen Design</a> ` + osmAttribution
)

// tileCatalog holds the basemaps known by id. Ids are lower-case with spaces
// removed ("Cartodb dark_matter" -> "cartodbdark_matter").
var tileCatalog = map[string]TileLayer{
	"cartodbpositron": {
		Name:        "CartoDB Positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
		MaxZoom:     20,
	},
	"openstreetmap": {
		Name:        "OpenStreetMap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
		MaxZoom:     19,
	},
	"stamenwatercolor": {
		Name:        "Stamen Watercolor",
		URL:         "https://tiles.stadiamaps.com/tiles/stamen_watercolor/{z}/{x}/{y}.jpg",
		Attribution: stamenAttribution,
		MaxZoom:     16,
	},
	"stamenterrain": {
		Name:        "Stamen Terrain",
		URL:         "https://tiles.stadiamaps.com/tiles/stamen_terrain/{z}/{x}/{y}{r}.png",
		Attribution: stamenAttribution,
		MaxZoom:     18,
	},
	"cartodbdark_matter": {
		Name:        "CartoDB Dark Matter",
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: cartoAttribution,
		MaxZoom:     20,
	},
}

// DefaultTileIDs is the basemap order of the published map; the first is
// shown on load.
var DefaultTileIDs = []string{
	"cartodbpositron", "openstreetmap", "stamenwatercolor", "stamenterrain", "cartodbdark_matter",
}

// LookupTiles resolves tile ids in order. Display names such as
// "Cartodb dark_matter" resolve to their catalog id. Duplicates are dropped so
// the same basemap is never offered twice.
func LookupTiles(ids []string) ([]TileLayer, error) {
	tiles := make([]TileLayer, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, raw := range ids {
		id := tileID(raw)
		if seen[id] {
			continue
		}
		t, ok := tileCatalog[id]
		if !ok {
			return nil, fmt.Errorf("unknown base tile %q", raw)
		}
		t.ID = id
		tiles = append(tiles, t)
		seen[id] = true
	}
	return tiles, nil
}

func tileID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
