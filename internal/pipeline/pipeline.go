// Package pipeline orchestrates one analysis run: fetch, clean, derive,
// render, export. Stages run strictly in sequence; each consumes the
// previous stage's in-memory table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/covid-trends/internal/domain"
	"github.com/couchcryptid/covid-trends/internal/observability"
	"github.com/couchcryptid/covid-trends/internal/render"
)

// Fetcher reads the raw dataset from its source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.RawRecord, error)
}

// Renderer produces one chart or map artifact from the derived table.
type Renderer interface {
	Name() string
	Render(obs []domain.Observation) error
}

// Exporter writes one tabular or report artifact from the derived table.
type Exporter interface {
	Name() string
	Export(obs []domain.Observation) error
}

// Pipeline wires the stages of a single batch run.
type Pipeline struct {
	fetcher   Fetcher
	cleanOpts domain.CleanOptions
	renderers []Renderer
	exporters []Exporter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, cleanOpts domain.CleanOptions, renderers []Renderer, exporters []Exporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		cleanOpts: cleanOpts,
		renderers: renderers,
		exporters: exporters,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes the full load-clean-derive-render-export sequence once.
// A fetch failure or any export failure aborts the run; a failure on an
// individual chart is logged and skipped so the remaining artifacts are
// still produced.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.RunActive.Set(1)
	defer p.metrics.RunActive.Set(0)
	defer func() {
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	raw, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	p.metrics.RowsFetched.Add(float64(len(raw)))

	obs, stats := domain.Clean(raw, p.cleanOpts)
	p.metrics.RowsDropped.Add(float64(stats.Dropped))
	p.metrics.RowsCleaned.Add(float64(stats.Kept))
	p.logger.Info("dataset cleaned",
		"input", stats.Input,
		"dropped", stats.Dropped,
		"filtered", stats.Filtered,
		"kept", stats.Kept,
	)
	if len(obs) == 0 {
		return errors.New("no rows survived cleaning")
	}

	obs = domain.DeriveMetrics(obs)
	p.logger.Info("metrics derived", "rows", len(obs), "rolling_window_days", domain.RollingWindow)

	for _, r := range p.renderers {
		if err := r.Render(obs); err != nil {
			if errors.Is(err, render.ErrMetricMissing) {
				p.logger.Warn("chart skipped, metric column missing", "artifact", r.Name(), "error", err)
			} else {
				p.logger.Error("chart failed, skipping", "artifact", r.Name(), "error", err)
			}
			p.metrics.ChartsSkipped.Inc()
			continue
		}
		p.logger.Info("artifact rendered", "artifact", r.Name())
		p.metrics.ChartsRendered.Inc()
	}

	for _, e := range p.exporters {
		if err := e.Export(obs); err != nil {
			return fmt.Errorf("export %s: %w", e.Name(), err)
		}
		p.metrics.ExportsWritten.Inc()
	}

	p.logger.Info("run complete", "elapsed", time.Since(start))
	return nil
}
