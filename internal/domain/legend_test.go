package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLegendCatalog(t *testing.T) {
	catalog := NewLegendCatalog(DefaultPalette())
	require.Len(t, catalog, 4)

	data, ok := catalog.ForDimension(DimDataAvailability)
	require.True(t, ok)
	assert.Equal(t, "Data Availability", data.Title)
	assert.Equal(t, "Data_Availability", data.Layer)
	assert.Equal(t, []Swatch{
		{Label: "Yes", Color: "#009E73"},
		{Label: "Partly (upon request authors)", Color: "#E69F00"},
		{Label: "No", Color: "#662a5a"},
	}, data.Entries)
	assert.Equal(t, LegendPosition{Bottom: 10, Left: 380}, data.Position)

	tracers, ok := catalog.ForDimension(DimTracers)
	require.True(t, ok)
	assert.Equal(t, Swatch{Label: "Multiple", Color: "black"}, tracers.Entries[len(tracers.Entries)-1])
}

func TestNewLegendCatalog_LabelFallsBackToMatch(t *testing.T) {
	p := Palette{Dimensions: []Dimension{{
		Key:        DimCompartment,
		Layer:      "GW_Compartment",
		Categories: []Category{{Match: "Springs", Color: "green"}},
		Default:    Swatch{Label: "Other", Color: "grey"},
	}}}

	catalog := NewLegendCatalog(p)
	assert.Equal(t, "Springs", catalog[0].Entries[0].Label)
}

// Every legend swatch must be a color ColorFor can actually return.
func TestLegendCatalog_MatchesColorMapper(t *testing.T) {
	p := DefaultPalette()
	for _, legend := range NewLegendCatalog(p) {
		d, ok := p.Dimension(legend.Dimension)
		require.True(t, ok)
		for i, c := range d.Categories {
			assert.Equal(t, legend.Entries[i].Color, p.ColorFor(d.Key, c.Match))
		}
		last := legend.Entries[len(legend.Entries)-1]
		assert.Equal(t, last.Color, p.ColorFor(d.Key, "value outside the vocabulary"))
	}
}

func TestLegendCatalog_CheckConsistency(t *testing.T) {
	p := DefaultPalette()
	layers, err := ComposeLayers(nil, nil, p)
	require.NoError(t, err)

	t.Run("consistent", func(t *testing.T) {
		assert.NoError(t, NewLegendCatalog(p).CheckConsistency(layers))
	})

	t.Run("layer without legend", func(t *testing.T) {
		catalog := NewLegendCatalog(p)[1:]
		err := catalog.CheckConsistency(layers)

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "Data_Availability", renderErr.Layer)
		assert.Contains(t, renderErr.Error(), "no legend")
	})

	t.Run("legend without layer", func(t *testing.T) {
		trimmed := append([]Layer{}, layers[:4]...)
		trimmed = append(trimmed, layers[5])
		err := NewLegendCatalog(p).CheckConsistency(trimmed)

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "GW_Compartment", renderErr.Layer)
		assert.Contains(t, renderErr.Error(), "has no layer")
	})

	t.Run("overlapping legends", func(t *testing.T) {
		catalog := NewLegendCatalog(p)
		catalog[2].Position = catalog[0].Position
		err := catalog.CheckConsistency(layers)

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Contains(t, renderErr.Error(), "position")
	})
}
