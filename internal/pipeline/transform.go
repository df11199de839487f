package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/groundwater-study-map/internal/domain"
)

// StudyTransformer implements Transformer with the domain loader, feature
// builder, and layer composer.
type StudyTransformer struct {
	palette domain.Palette
	workers int
	logger  *slog.Logger
}

// NewTransformer creates a StudyTransformer. workers bounds how many records
// are turned into features concurrently; values below 1 mean one.
func NewTransformer(palette domain.Palette, workers int, logger *slog.Logger) *StudyTransformer {
	if workers < 1 {
		workers = 1
	}
	return &StudyTransformer{palette: palette, workers: workers, logger: logger}
}

func (t *StudyTransformer) Transform(ctx context.Context, table domain.RawTable, boundary json.RawMessage) (Build, error) {
	loaded, err := domain.LoadRecords(table)
	if err != nil {
		return Build{}, err
	}
	t.logger.Debug("records loaded", "retained", len(loaded.Records), "rejected", len(loaded.Rejected))

	features, err := BuildAll(ctx, loaded.Records, t.palette, t.workers)
	if err != nil {
		return Build{}, err
	}

	layers, err := domain.ComposeLayers(features, boundary, t.palette)
	if err != nil {
		return Build{}, err
	}
	return Build{Load: loaded, Layers: layers}, nil
}

// BuildAll builds the features of every record on up to workers goroutines.
// The result is in record order, exactly as a sequential loop would produce.
func BuildAll(ctx context.Context, records []domain.StudyRecord, p domain.Palette, workers int) ([]domain.Feature, error) {
	per := make([][]domain.Feature, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			per[i] = domain.BuildFeatures(records[i], p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Feature, 0, len(records)*domain.FeaturesPerRecord(p))
	for _, fs := range per {
		out = append(out, fs...)
	}
	return out, nil
}
