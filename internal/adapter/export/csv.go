// Package export writes the derived observation table to flat artifacts:
// a CSV of every row and an XLSX summary workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

// Columns is the fixed CSV column set, in output order.
var Columns = []string{
	"date",
	"location",
	"iso_code",
	"continent",
	"population",
	"total_cases",
	"new_cases",
	"total_deaths",
	"new_deaths",
	"total_vaccinations",
	"people_vaccinated",
	"people_fully_vaccinated",
	"cases_per_million",
	"deaths_per_million",
	"mortality_rate",
	"vaccination_rate",
	"new_cases_smoothed",
}

// CSVWriter writes the derived table to a single CSV file, overwriting any
// prior file at the path. It implements pipeline.Exporter.
type CSVWriter struct {
	path   string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV exporter targeting path.
func NewCSVWriter(path string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{path: path, logger: logger}
}

// Name identifies the artifact in logs.
func (w *CSVWriter) Name() string { return "csv:" + w.path }

// Export serializes the table. Absent values become empty cells.
func (w *CSVWriter) Export(obs []domain.Observation) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, o := range obs {
		if err := cw.Write(row(o)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}

	w.logger.Info("csv export written", "path", w.path, "rows", len(obs))
	return nil
}

func row(o domain.Observation) []string {
	return []string{
		o.Date.Format("2006-01-02"),
		o.Country,
		o.ISOCode,
		o.Continent,
		cell(o.Population),
		cell(o.TotalCases),
		cell(o.NewCases),
		cell(o.TotalDeaths),
		cell(o.NewDeaths),
		cell(o.TotalVaccinations),
		cell(o.PeopleVaccinated),
		cell(o.PeopleFullyVaccinated),
		cell(o.CasesPerMillion),
		cell(o.DeathsPerMillion),
		cell(o.MortalityRate),
		cell(o.VaccinationRate),
		cell(o.NewCasesSmoothed),
	}
}

// cell formats an optional value; absent renders as the empty cell, the
// same convention the source dataset uses.
func cell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
