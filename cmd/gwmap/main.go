// Command gwmap builds the groundwater recharge study map from the survey
// sheet and writes it as a single HTML file. With SERVE=true it also serves
// the map over HTTP until interrupted.
//
// Exit codes: 0 on success, 2 when the survey sheet does not match the
// expected columns, 3 when the map cannot be rendered, 1 for anything else.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/groundwater-study-map/internal/adapter/csvfile"
	"github.com/couchcryptid/groundwater-study-map/internal/adapter/geojson"
	"github.com/couchcryptid/groundwater-study-map/internal/adapter/htmlfile"
	httpadapter "github.com/couchcryptid/groundwater-study-map/internal/adapter/http"
	"github.com/couchcryptid/groundwater-study-map/internal/config"
	"github.com/couchcryptid/groundwater-study-map/internal/domain"
	"github.com/couchcryptid/groundwater-study-map/internal/observability"
	"github.com/couchcryptid/groundwater-study-map/internal/pipeline"
	"github.com/couchcryptid/groundwater-study-map/internal/render"
)

const (
	exitOK     = 0
	exitError  = 1
	exitSchema = 2
	exitRender = 3
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitError)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	os.Exit(run(cfg, logger, metrics))
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) int {
	palette, err := config.LoadPalette(cfg.PaletteFile)
	if err != nil {
		logger.Error("failed to load palette", "error", err)
		return exitError
	}

	p := pipeline.New(
		csvfile.NewReader(cfg.InputPath, cfg.CSVDelimiter, logger),
		geojson.NewReader(cfg.BoundaryPath, logger),
		pipeline.NewTransformer(palette, cfg.BuildWorkers, logger),
		render.NewRenderer(palette, cfg.MapTitle, render.View{Center: cfg.MapCenter, Zoom: cfg.MapZoom}, cfg.BaseTiles),
		[]pipeline.Loader{htmlfile.NewWriter(cfg.OutputPath, logger)},
		logger,
		metrics,
		clockwork.NewRealClock(),
	)

	var srv *httpadapter.Server
	if cfg.Serve {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		p.AddLoader(srv)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := p.Run(ctx); err != nil {
		logger.Error("map build failed", "error", err)
		return exitCode(err)
	}
	if srv == nil {
		return exitOK
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
		return exitError
	}
	logger.Info("shutdown complete")
	return exitOK
}

func exitCode(err error) int {
	var schemaErr *domain.SchemaError
	var renderErr *domain.RenderError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &schemaErr):
		return exitSchema
	case errors.As(err, &renderErr):
		return exitRender
	default:
		return exitError
	}
}
