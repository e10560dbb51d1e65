// Command validate runs offline data-quality checks over an OWID-format
// dataset file: required-field presence, date parseability, zero or
// missing populations, and monotonicity of cumulative series. It only
// reports; the cleaner never repairs these conditions.
//
// Usage:
//
//	go run ./cmd/validate -dataset testdata/owid_sample.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/couchcryptid/covid-trends/internal/adapter/owid"
	"github.com/couchcryptid/covid-trends/internal/domain"
)

// phase tracks findings for one validation phase.
type phase struct {
	name     string
	findings []string
}

func (p *phase) notef(format string, args ...any) {
	p.findings = append(p.findings, fmt.Sprintf(format, args...))
}

func (p *phase) clean() bool { return len(p.findings) == 0 }

func main() {
	dataset := flag.String("dataset", "", "path to an OWID-format CSV file")
	flag.Parse()

	if *dataset == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataset); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open dataset: %v\n", err)
		return 1
	}
	defer f.Close()

	records, err := owid.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode dataset: %v\n", err)
		return 1
	}

	fmt.Printf("dataset: %s (%d rows)\n\n", path, len(records))

	phases := []*phase{
		checkRequiredFields(records),
		checkPopulation(records),
		checkMonotonicity(records),
	}

	for _, p := range phases {
		if p.clean() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		fmt.Printf("WARN %s (%d findings)\n", p.name, len(p.findings))
		for _, f := range p.findings {
			fmt.Printf("  - %s\n", f)
		}
	}

	// Data-quality findings are expected in the real feed; only an
	// unreadable dataset is a failure.
	return 0
}

// checkRequiredFields counts rows the cleaner would drop.
func checkRequiredFields(records []domain.RawRecord) *phase {
	p := &phase{name: "required fields"}
	dropped := 0
	for _, r := range records {
		if _, err := domain.ParseObservation(r); err != nil {
			dropped++
		}
	}
	if dropped > 0 {
		p.notef("%d of %d rows missing location, iso_code, or a parseable date", dropped, len(records))
	}
	return p
}

// checkPopulation flags countries whose rows never carry a positive
// population; their per-million metrics will be absent.
func checkPopulation(records []domain.RawRecord) *phase {
	p := &phase{name: "population coverage"}
	hasPopulation := map[string]bool{}
	for _, r := range records {
		o, err := domain.ParseObservation(r)
		if err != nil {
			continue
		}
		if o.Population != nil && *o.Population > 0 {
			hasPopulation[o.Country] = true
		} else if _, seen := hasPopulation[o.Country]; !seen {
			hasPopulation[o.Country] = false
		}
	}
	for _, country := range sortedKeys(hasPopulation) {
		if !hasPopulation[country] {
			p.notef("%s: no positive population value; per-million metrics will be absent", country)
		}
	}
	return p
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkMonotonicity flags cumulative series that decrease over time.
func checkMonotonicity(records []domain.RawRecord) *phase {
	p := &phase{name: "cumulative monotonicity"}

	obs, _ := domain.Clean(records, domain.CleanOptions{})

	cumulative := []struct {
		name  string
		value func(domain.Observation) *float64
	}{
		{"total_cases", func(o domain.Observation) *float64 { return o.TotalCases }},
		{"total_deaths", func(o domain.Observation) *float64 { return o.TotalDeaths }},
		{"total_vaccinations", func(o domain.Observation) *float64 { return o.TotalVaccinations }},
	}

	for _, col := range cumulative {
		violations := map[string]int{}
		var country string
		var prev *float64
		for _, o := range obs {
			if o.Country != country {
				country = o.Country
				prev = nil
			}
			v := col.value(o)
			if v == nil {
				continue
			}
			if prev != nil && *v < *prev {
				violations[country]++
			}
			prev = v
		}
		for _, country := range sortedKeys(violations) {
			p.notef("%s: %s decreases %d time(s)", country, col.name, violations[country])
		}
	}
	return p
}
