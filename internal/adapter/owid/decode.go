// Package owid fetches and decodes the Our World in Data COVID-19 CSV,
// from either the published URL or a local file.
package owid

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

// retained maps the OWID header names this analysis keeps to setters on
// the raw record. Columns outside this set are ignored; columns missing
// from the file leave the corresponding field empty, which downstream
// treats as absent.
var retained = map[string]func(*domain.RawRecord, string){
	"iso_code":                func(r *domain.RawRecord, v string) { r.ISOCode = v },
	"continent":               func(r *domain.RawRecord, v string) { r.Continent = v },
	"location":                func(r *domain.RawRecord, v string) { r.Location = v },
	"date":                    func(r *domain.RawRecord, v string) { r.Date = v },
	"population":              func(r *domain.RawRecord, v string) { r.Population = v },
	"total_cases":             func(r *domain.RawRecord, v string) { r.TotalCases = v },
	"new_cases":               func(r *domain.RawRecord, v string) { r.NewCases = v },
	"total_deaths":            func(r *domain.RawRecord, v string) { r.TotalDeaths = v },
	"new_deaths":              func(r *domain.RawRecord, v string) { r.NewDeaths = v },
	"total_vaccinations":      func(r *domain.RawRecord, v string) { r.TotalVaccinations = v },
	"people_vaccinated":       func(r *domain.RawRecord, v string) { r.PeopleVaccinated = v },
	"people_fully_vaccinated": func(r *domain.RawRecord, v string) { r.PeopleFullyVaccinated = v },
}

// Decode reads an OWID-format CSV stream into raw records. The first row
// must be the header; it selects which columns feed each field. Rows
// shorter than the header are tolerated (trailing cells absent), which
// matches how OWID truncates sparse rows.
func Decode(r io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	type column struct {
		idx int
		set func(*domain.RawRecord, string)
	}
	var columns []column
	for i, name := range header {
		if set, ok := retained[name]; ok {
			columns = append(columns, column{idx: i, set: set})
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no recognized columns in header %v", header)
	}

	var records []domain.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		var rec domain.RawRecord
		for _, c := range columns {
			if c.idx < len(row) {
				c.set(&rec, row[c.idx])
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
