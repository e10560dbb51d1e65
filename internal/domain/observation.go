package domain

import "time"

// RawRecord holds one undecoded CSV row. Fields mirror the OWID column
// names; every value is the raw cell string, empty when the cell was empty
// or the column was absent from the file.
type RawRecord struct {
	ISOCode               string
	Continent             string
	Location              string
	Date                  string
	Population            string
	TotalCases            string
	NewCases              string
	TotalDeaths           string
	NewDeaths             string
	TotalVaccinations     string
	PeopleVaccinated      string
	PeopleFullyVaccinated string
}

// Observation is the typed representation of one (country, date) row.
// Numeric fields are pointers: nil means the value was not reported, which
// is distinct from a reported zero.
type Observation struct {
	ISOCode   string
	Continent string
	Country   string
	Date      time.Time

	Population            *float64
	TotalCases            *float64
	NewCases              *float64
	TotalDeaths           *float64
	NewDeaths             *float64
	TotalVaccinations     *float64
	PeopleVaccinated      *float64
	PeopleFullyVaccinated *float64

	// Derived fields, populated by DeriveMetrics.
	CasesPerMillion  *float64
	DeathsPerMillion *float64
	MortalityRate    *float64
	VaccinationRate  *float64
	NewCasesSmoothed *float64
}

// Ranking is one entry of a top-N country ranking.
type Ranking struct {
	Rank    int
	Country string
	Value   float64
}

// Metric names a selectable column of the derived table. Value extracts
// the column from an observation; nil means absent for that row.
type Metric struct {
	Name  string
	Title string
	Value func(o Observation) *float64
}

// The selectable metrics of the derived table.
var (
	MetricTotalCases = Metric{
		Name:  "total_cases",
		Title: "Total Cases",
		Value: func(o Observation) *float64 { return o.TotalCases },
	}
	MetricNewCases = Metric{
		Name:  "new_cases",
		Title: "Daily New Cases",
		Value: func(o Observation) *float64 { return o.NewCases },
	}
	MetricTotalDeaths = Metric{
		Name:  "total_deaths",
		Title: "Total Deaths",
		Value: func(o Observation) *float64 { return o.TotalDeaths },
	}
	MetricCasesPerMillion = Metric{
		Name:  "cases_per_million",
		Title: "Cases per Million",
		Value: func(o Observation) *float64 { return o.CasesPerMillion },
	}
	MetricDeathsPerMillion = Metric{
		Name:  "deaths_per_million",
		Title: "Deaths per Million",
		Value: func(o Observation) *float64 { return o.DeathsPerMillion },
	}
	MetricMortalityRate = Metric{
		Name:  "mortality_rate",
		Title: "Mortality Rate",
		Value: func(o Observation) *float64 { return o.MortalityRate },
	}
	MetricVaccinationRate = Metric{
		Name:  "vaccination_rate",
		Title: "Vaccination Rate",
		Value: func(o Observation) *float64 { return o.VaccinationRate },
	}
	MetricNewCasesSmoothed = Metric{
		Name:  "new_cases_smoothed",
		Title: "Daily New Cases (7-day avg)",
		Value: func(o Observation) *float64 { return o.NewCasesSmoothed },
	}
)

// Metrics lists every selectable metric in export column order.
var Metrics = []Metric{
	MetricTotalCases,
	MetricNewCases,
	MetricTotalDeaths,
	MetricCasesPerMillion,
	MetricDeathsPerMillion,
	MetricMortalityRate,
	MetricVaccinationRate,
	MetricNewCasesSmoothed,
}

// MetricByName looks up a metric by its column name.
func MetricByName(name string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Float returns a pointer to v. Convenience for building observations in
// fixtures and tests.
func Float(v float64) *float64 { return &v }
