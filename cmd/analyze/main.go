// Command analyze runs the COVID trends batch analysis end to end: it
// loads the OWID dataset, cleans it, derives per-capita and rolling
// metrics, renders charts and maps, writes the insights report, and
// exports the derived table. It takes no arguments; see internal/config
// for the environment defaults.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/covid-trends/internal/adapter/export"
	"github.com/couchcryptid/covid-trends/internal/adapter/owid"
	"github.com/couchcryptid/covid-trends/internal/config"
	"github.com/couchcryptid/covid-trends/internal/domain"
	"github.com/couchcryptid/covid-trends/internal/observability"
	"github.com/couchcryptid/covid-trends/internal/pipeline"
	"github.com/couchcryptid/covid-trends/internal/render"
	"github.com/couchcryptid/covid-trends/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("failed to create output dir", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	var fetcher pipeline.Fetcher
	if cfg.DatasetPath != "" {
		fetcher = owid.NewFileSource(cfg.DatasetPath, logger)
	} else {
		fetcher = owid.NewClient(cfg.DatasetURL, cfg.FetchTimeout, logger)
	}

	out := func(name string) string { return filepath.Join(cfg.OutputDir, name) }

	renderers := []pipeline.Renderer{
		render.NewTimeSeries(domain.MetricTotalCases, "Total COVID-19 Cases Over Time", out("total_cases_over_time.png")),
		render.NewTimeSeries(domain.MetricNewCasesSmoothed, "Daily New COVID-19 Cases (7-day avg)", out("daily_new_cases.png")),
		render.NewTimeSeries(domain.MetricVaccinationRate, "COVID-19 Vaccination Progress", out("vaccination_progress.png")),
		render.NewComparison(domain.MetricCasesPerMillion, "Cases per Million Population", out("cases_per_million.png")),
		render.NewComparison(domain.MetricDeathsPerMillion, "Deaths per Million Population", out("deaths_per_million.png")),
		render.NewChoropleth(domain.MetricCasesPerMillion, "Global COVID-19 Cases per Million", out("cases_per_million_map.html")),
		render.NewChoropleth(domain.MetricDeathsPerMillion, "Global COVID-19 Deaths per Million", out("deaths_per_million_map.html")),
	}

	exporters := []pipeline.Exporter{
		export.NewCSVWriter(out("covid_analysis_results.csv"), logger),
		export.NewWorkbook(out("covid_analysis_summary.xlsx"), cfg.TopN, logger),
		report.NewInsights(out("insights.txt"), cfg.TopN, logger),
	}

	p := pipeline.New(fetcher, domain.CleanOptions{Countries: cfg.Countries},
		renderers, exporters, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}
