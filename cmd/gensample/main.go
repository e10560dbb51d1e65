// Command gensample writes a small deterministic OWID-style CSV so the
// analysis can run offline (DATASET_PATH) and tests share a realistic
// fixture. Case curves follow a logistic ramp per country; vaccination
// columns stay empty for the first portion of the range, matching how the
// real feed reports them.
//
// Usage:
//
//	go run ./cmd/gensample -out testdata/owid_sample.csv -days 120
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"
)

var start = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

type country struct {
	name       string
	iso        string
	continent  string
	population float64
	peakDaily  float64 // height of the daily-cases curve
	midpoint   int     // day index where the cumulative curve inflects
	vaccFrom   int     // first day index with vaccination data
}

var countries = []country{
	{name: "United States", iso: "USA", continent: "North America", population: 331_000_000, peakDaily: 250_000, midpoint: 40, vaccFrom: 10},
	{name: "India", iso: "IND", continent: "Asia", population: 1_380_000_000, peakDaily: 90_000, midpoint: 70, vaccFrom: 16},
	{name: "Brazil", iso: "BRA", continent: "South America", population: 212_000_000, peakDaily: 75_000, midpoint: 55, vaccFrom: 18},
	{name: "Germany", iso: "DEU", continent: "Europe", population: 83_000_000, peakDaily: 25_000, midpoint: 35, vaccFrom: 0},
	{name: "Kenya", iso: "KEN", continent: "Africa", population: 53_700_000, peakDaily: 1_500, midpoint: 80, vaccFrom: 63},
}

var header = []string{
	"iso_code", "continent", "location", "date",
	"total_cases", "new_cases", "total_deaths", "new_deaths",
	"total_vaccinations", "people_vaccinated", "people_fully_vaccinated",
	"population",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the sample CSV")
	days := flag.Int("days", 120, "number of days per country")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for _, c := range countries {
		var totalCases, totalDeaths, totalVacc float64
		for d := 0; d < *days; d++ {
			newCases := dailyCases(c, d)
			newDeaths := math.Round(newCases * 0.018)
			totalCases += newCases
			totalDeaths += newDeaths

			row := []string{
				c.iso, c.continent, c.name,
				start.AddDate(0, 0, d).Format("2006-01-02"),
				formatCount(totalCases), formatCount(newCases),
				formatCount(totalDeaths), formatCount(newDeaths),
				"", "", "",
				formatCount(c.population),
			}

			if d >= c.vaccFrom {
				totalVacc += c.population * 0.005
				peopleVacc := math.Min(totalVacc*0.7, c.population*0.8)
				row[8] = formatCount(totalVacc)
				row[9] = formatCount(peopleVacc)
				row[10] = formatCount(peopleVacc * 0.6)
			}

			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	fmt.Printf("wrote %d rows for %d countries to %s\n", rows, len(countries), *out)
	return nil
}

// dailyCases shapes new cases as a bell around the country's midpoint.
func dailyCases(c country, day int) float64 {
	x := float64(day-c.midpoint) / 14.0
	return math.Round(c.peakDaily * math.Exp(-x*x/2))
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
