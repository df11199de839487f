package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
	"github.com/couchcryptid/groundwater-study-map/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Build stages, used as the metrics label and in error messages.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageRender    = "render"
	StageLoad      = "load"
)

// TableExtractor reads the raw survey sheet.
type TableExtractor interface {
	ReadTable(ctx context.Context) (domain.RawTable, error)
}

// BoundaryExtractor reads the boundary overlay. A nil document means no overlay.
type BoundaryExtractor interface {
	ReadBoundary(ctx context.Context) (json.RawMessage, error)
}

// Transformer turns the raw sheet into map layers.
type Transformer interface {
	Transform(ctx context.Context, table domain.RawTable, boundary json.RawMessage) (Build, error)
}

// Renderer serializes layers into the final document.
type Renderer interface {
	Render(ctx context.Context, layers []domain.Layer) ([]byte, error)
}

// Loader receives the rendered document.
type Loader interface {
	Write(ctx context.Context, doc []byte) error
}

// Build is the output of the transform stage.
type Build struct {
	Load   domain.LoadResult
	Layers []domain.Layer
}

// Report summarizes one successful run.
type Report struct {
	RowsRead        int
	RecordsRetained int
	Rejected        []domain.RowRejected
	Features        int
	Bytes           int
	Elapsed         time.Duration
}

// Pipeline runs the extract-transform-render-load sequence once per Run.
type Pipeline struct {
	table       TableExtractor
	boundary    BoundaryExtractor
	transformer Transformer
	renderer    Renderer
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	ready       atomic.Bool
}

// New creates a Pipeline. Every loader receives the document, in order.
func New(
	table TableExtractor,
	boundary BoundaryExtractor,
	t Transformer,
	r Renderer,
	loaders []Loader,
	logger *slog.Logger,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) *Pipeline {
	return &Pipeline{
		table:       table,
		boundary:    boundary,
		transformer: t,
		renderer:    r,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// AddLoader appends a loader. It must not be called while Run is in progress.
func (p *Pipeline) AddLoader(l Loader) {
	p.loaders = append(p.loaders, l)
}

// CheckReadiness returns nil once a document has been built and loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no map has been built yet")
	}
	return nil
}

// Ready reports whether a run has completed successfully.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run builds the map once. Returned errors carry the failing stage name and
// wrap the cause, so errors.As finds *domain.SchemaError and *domain.RenderError.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	start := p.clock.Now()
	report, err := p.run(ctx)
	report.Elapsed = p.clock.Since(start)

	if err != nil {
		p.metrics.LastRunSuccess.Set(0)
		return report, err
	}

	p.metrics.LastRunSuccess.Set(1)
	p.ready.Store(true)
	p.logger.Info("map built",
		"rows_read", report.RowsRead,
		"records", report.RecordsRetained,
		"rejected", len(report.Rejected),
		"features", report.Features,
		"bytes", report.Bytes,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context) (Report, error) {
	var report Report

	var (
		table    domain.RawTable
		boundary json.RawMessage
	)
	err := p.stage(StageExtract, func() error {
		var err error
		if table, err = p.table.ReadTable(ctx); err != nil {
			return err
		}
		boundary, err = p.boundary.ReadBoundary(ctx)
		return err
	})
	if err != nil {
		return report, err
	}
	report.RowsRead = len(table.Rows)
	p.metrics.RowsRead.Add(float64(report.RowsRead))

	var build Build
	err = p.stage(StageTransform, func() error {
		var err error
		build, err = p.transformer.Transform(ctx, table, boundary)
		return err
	})
	if err != nil {
		return report, err
	}
	report.RecordsRetained = len(build.Load.Records)
	report.Rejected = build.Load.Rejected
	report.Features = domain.CountFeatures(build.Layers)
	p.recordBuild(build)

	var doc []byte
	err = p.stage(StageRender, func() error {
		var err error
		doc, err = p.renderer.Render(ctx, build.Layers)
		return err
	})
	if err != nil {
		return report, err
	}
	report.Bytes = len(doc)
	p.metrics.DocumentBytes.Set(float64(len(doc)))

	err = p.stage(StageLoad, func() error {
		for _, l := range p.loaders {
			if err := l.Write(ctx, doc); err != nil {
				return err
			}
		}
		return nil
	})
	return report, err
}

// stage times fn and labels its error with the stage name.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := p.clock.Now()
	err := fn()
	p.metrics.StageDuration.WithLabelValues(name).Observe(p.clock.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (p *Pipeline) recordBuild(build Build) {
	p.metrics.RecordsRetained.Set(float64(len(build.Load.Records)))
	for _, r := range build.Load.Rejected {
		p.metrics.RowsRejected.WithLabelValues(r.Reason).Inc()
		p.logger.Warn("row rejected", "row", r.Row, "column", r.Column, "reason", r.Reason)
	}
	for _, l := range build.Layers {
		if len(l.Features) > 0 {
			p.metrics.FeaturesBuilt.WithLabelValues(l.Name).Add(float64(len(l.Features)))
		}
	}
}
