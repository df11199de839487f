package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/groundwater-study-map/internal/config"
	"github.com/couchcryptid/groundwater-study-map/internal/domain"
	"github.com/couchcryptid/groundwater-study-map/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "DOI,Reviewer,Data Availability,Tracers,Isotope Method,Compartment,Country,Catchment,Latitude,Longitude,Elevation,Geological System,Model,Study Length,Sampling Frequency,Objective,Keywords\n"

func testConfig(t *testing.T, csv string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "survey.csv")
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o600))

	return &config.Config{
		InputPath:       input,
		CSVDelimiter:    ',',
		OutputPath:      filepath.Join(dir, "GW_Study_Map.html"),
		MapTitle:        "Groundwater Recharge Studies Map",
		MapCenter:       [2]float64{46.81, 8.22},
		MapZoom:         5.2,
		BaseTiles:       []string{"cartodbpositron", "openstreetmap"},
		BuildWorkers:    2,
		HTTPAddr:        ":0",
		ShutdownTimeout: time.Second,
	}
}

func TestRun_WritesMap(t *testing.T) {
	cfg := testConfig(t, header+
		`https://doi.org/10.1/a,MS,"Yes (e.g., in repository or paper)",Tritium,Other,Springs,Austria,Lurbach,47.13,15.52,600,Karst,Mixing,2 years,Weekly,Recharge,karst`+"\n")

	code := run(cfg, slog.Default(), observability.NewMetricsForTesting())
	require.Equal(t, exitOK, code)

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<!DOCTYPE html>"))
	assert.Contains(t, string(out), "Lurbach")
}

func TestRun_SchemaErrorExitCode(t *testing.T) {
	cfg := testConfig(t, "DOI,Country\nx,Austria\n")

	assert.Equal(t, exitSchema, run(cfg, slog.Default(), observability.NewMetricsForTesting()))
	assert.NoFileExists(t, cfg.OutputPath)
}

func TestRun_UnknownTileExitCode(t *testing.T) {
	cfg := testConfig(t, header)
	cfg.BaseTiles = []string{"googlesatellite"}

	assert.Equal(t, exitRender, run(cfg, slog.Default(), observability.NewMetricsForTesting()))
}

func TestRun_MissingInput(t *testing.T) {
	cfg := testConfig(t, header)
	cfg.InputPath = filepath.Join(t.TempDir(), "absent.csv")

	assert.Equal(t, exitError, run(cfg, slog.Default(), observability.NewMetricsForTesting()))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"schema", fmt.Errorf("transform: %w", &domain.SchemaError{Missing: []string{"DOI"}}), exitSchema},
		{"render", fmt.Errorf("render: %w", &domain.RenderError{Reason: "no layers to render"}), exitRender},
		{"other", errors.New("boom"), exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
