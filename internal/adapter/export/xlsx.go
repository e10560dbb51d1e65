package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

const (
	rankingsSheet = "Rankings"
	latestSheet   = "Latest"
)

// rankedMetrics are the metrics the workbook dashboard ranks countries by.
var rankedMetrics = []domain.Metric{
	domain.MetricTotalCases,
	domain.MetricTotalDeaths,
	domain.MetricVaccinationRate,
}

// Workbook writes an XLSX summary: a ranking dashboard and a latest-date
// snapshot per country. It implements pipeline.Exporter.
type Workbook struct {
	path   string
	topN   int
	logger *slog.Logger
}

// NewWorkbook creates an XLSX exporter targeting path, ranking the top n
// countries per metric.
func NewWorkbook(path string, topN int, logger *slog.Logger) *Workbook {
	return &Workbook{path: path, topN: topN, logger: logger}
}

// Name identifies the artifact in logs.
func (w *Workbook) Name() string { return "xlsx:" + w.path }

// Export builds and saves the workbook, overwriting any prior file.
func (w *Workbook) Export(obs []domain.Observation) error {
	latest := domain.LatestSnapshots(obs)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", rankingsSheet)
	if err := w.writeRankings(f, latest); err != nil {
		return err
	}

	if _, err := f.NewSheet(latestSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := w.writeLatest(f, latest); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("xlsx export written", "path", w.path, "countries", len(latest))
	return nil
}

func (w *Workbook) writeRankings(f *excelize.File, latest []domain.Observation) error {
	rowNum := 1
	for _, metric := range rankedMetrics {
		if err := setRow(f, rankingsSheet, rowNum, []any{fmt.Sprintf("Top %d by %s", w.topN, metric.Title)}); err != nil {
			return err
		}
		rowNum++
		if err := setRow(f, rankingsSheet, rowNum, []any{"Rank", "Country", metric.Name}); err != nil {
			return err
		}
		rowNum++

		for _, r := range domain.TopCountries(latest, metric, w.topN) {
			if err := setRow(f, rankingsSheet, rowNum, []any{r.Rank, r.Country, r.Value}); err != nil {
				return err
			}
			rowNum++
		}
		rowNum++ // blank spacer between metric blocks
	}
	return nil
}

func (w *Workbook) writeLatest(f *excelize.File, latest []domain.Observation) error {
	header := make([]any, 0, len(domain.Metrics)+2)
	header = append(header, "Country", "Date")
	for _, m := range domain.Metrics {
		header = append(header, m.Name)
	}
	if err := setRow(f, latestSheet, 1, header); err != nil {
		return err
	}

	for i, o := range latest {
		cells := make([]any, 0, len(domain.Metrics)+2)
		cells = append(cells, o.Country, o.Date.Format("2006-01-02"))
		for _, m := range domain.Metrics {
			if v := m.Value(o); v != nil {
				cells = append(cells, *v)
			} else {
				cells = append(cells, "")
			}
		}
		if err := setRow(f, latestSheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	addr, err := excelize.JoinCellName("A", rowNum)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
		return fmt.Errorf("set row %d on %s: %w", rowNum, sheet, err)
	}
	return nil
}
