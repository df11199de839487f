package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all build settings, populated from environment variables.
type Config struct {
	InputPath    string
	CSVDelimiter rune
	BoundaryPath string
	OutputPath   string
	PaletteFile  string

	MapTitle  string
	MapCenter [2]float64
	MapZoom   float64
	BaseTiles []string

	BuildWorkers int

	Serve           bool
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("CSV_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	center, err := parseCenter(sharedcfg.EnvOrDefault("MAP_CENTER", "46.81,8.22"))
	if err != nil {
		return nil, err
	}

	zoom, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("MAP_ZOOM", "5.2"), 64)
	if err != nil || !isFinite(zoom) || zoom < 0 || zoom > 22 {
		return nil, errors.New("invalid MAP_ZOOM")
	}

	workers, err := parseWorkers()
	if err != nil {
		return nil, err
	}

	serve, err := strconv.ParseBool(sharedcfg.EnvOrDefault("SERVE", "false"))
	if err != nil {
		return nil, errors.New("invalid SERVE")
	}

	cfg := &Config{
		InputPath:       sharedcfg.EnvOrDefault("INPUT_PATH", "Data/GW_Data_V2.csv"),
		CSVDelimiter:    delimiter,
		BoundaryPath:    os.Getenv("BOUNDARY_PATH"),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", "GW_Study_Map.html"),
		PaletteFile:     os.Getenv("PALETTE_FILE"),
		MapTitle:        sharedcfg.EnvOrDefault("MAP_TITLE", "Groundwater Recharge Studies Map"),
		MapCenter:       center,
		MapZoom:         zoom,
		BaseTiles:       parseList(sharedcfg.EnvOrDefault("BASE_TILES", "cartodbpositron,openstreetmap,stamenwatercolor,stamenterrain,cartodbdark_matter")),
		BuildWorkers:    workers,
		Serve:           serve,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}
	if _, set := os.LookupEnv("BOUNDARY_PATH"); !set {
		cfg.BoundaryPath = "Data/world_countries.json"
	}

	if len(cfg.BaseTiles) == 0 {
		return nil, errors.New("BASE_TILES is required")
	}

	return cfg, nil
}

func parseDelimiter(s string) (rune, error) {
	if s == `\t` || s == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid CSV_DELIMITER %q", s)
	}
	return r, nil
}

// parseCenter reads a "lat,lon" pair.
func parseCenter(s string) ([2]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]float64{}, errors.New("invalid MAP_CENTER: want lat,lon")
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || !isFinite(lat) || !isFinite(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return [2]float64{}, fmt.Errorf("invalid MAP_CENTER %q", s)
	}
	return [2]float64{lat, lon}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseWorkers() (int, error) {
	s := os.Getenv("BUILD_WORKERS")
	if s == "" {
		return runtime.GOMAXPROCS(0), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid BUILD_WORKERS")
	}
	return n, nil
}

func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
