// Package report generates the plain-text insights summary from the
// derived table.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

// majorCaseThreshold limits the mortality-rate comparison to countries
// with a substantial outbreak; tiny case counts make the ratio noisy.
const majorCaseThreshold = 1_000_000

// Insights writes a fixed-name text report of key findings. It implements
// pipeline.Exporter.
type Insights struct {
	path   string
	topN   int
	logger *slog.Logger
}

// NewInsights creates an insights reporter targeting path, listing the top
// n countries per finding.
func NewInsights(path string, topN int, logger *slog.Logger) *Insights {
	return &Insights{path: path, topN: topN, logger: logger}
}

// Name identifies the artifact in logs.
func (r *Insights) Name() string { return "report:" + r.path }

// Export builds the report and writes it, overwriting any prior file.
func (r *Insights) Export(obs []domain.Observation) error {
	latest := domain.LatestSnapshots(obs)

	var b strings.Builder
	fmt.Fprintf(&b, "KEY INSIGHTS (generated %s)\n\n", domain.Now().UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "1. Countries with most cases: %s\n",
		countryList(domain.TopCountries(latest, domain.MetricTotalCases, r.topN)))
	fmt.Fprintf(&b, "2. Countries with most deaths: %s\n",
		countryList(domain.TopCountries(latest, domain.MetricTotalDeaths, r.topN)))
	fmt.Fprintf(&b, "3. Countries with highest vaccination rates: %s\n",
		countryList(domain.TopCountries(latest, domain.MetricVaccinationRate, r.topN)))

	fmt.Fprintf(&b, "\n4. Highest mortality rates among countries with over %d cases:\n", majorCaseThreshold)
	for _, m := range highestMortality(latest, r.topN) {
		fmt.Fprintf(&b, "   - %s: %.2f%%\n", m.Country, m.Value*100)
	}

	if err := os.WriteFile(r.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write insights: %w", err)
	}

	r.logger.Info("insights written", "path", r.path)
	return nil
}

// countryList joins ranking entries into a comma-separated name list.
func countryList(rankings []domain.Ranking) string {
	if len(rankings) == 0 {
		return "n/a"
	}
	names := make([]string, len(rankings))
	for i, r := range rankings {
		names[i] = r.Country
	}
	return strings.Join(names, ", ")
}

// highestMortality ranks mortality rate among countries whose latest total
// cases exceed majorCaseThreshold.
func highestMortality(latest []domain.Observation, n int) []domain.Ranking {
	var major []domain.Observation
	for _, o := range latest {
		if o.TotalCases != nil && *o.TotalCases > majorCaseThreshold {
			major = append(major, o)
		}
	}
	return domain.TopCountries(major, domain.MetricMortalityRate, n)
}
