package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// owidAggregatePrefix marks pseudo-locations like "OWID_WRL" (World) and
// "OWID_EUR" (Europe) that aggregate many countries and would distort
// per-country rankings.
const owidAggregatePrefix = "OWID_"

// dateLayout is the OWID calendar-date format.
const dateLayout = "2006-01-02"

// CleanOptions controls the cleaning pass.
type CleanOptions struct {
	// Countries restricts the table to the named locations. Empty keeps
	// every country.
	Countries []string
}

// CleanStats summarizes a cleaning pass for logging and metrics.
type CleanStats struct {
	Input    int
	Dropped  int
	Filtered int
	Kept     int
}

// ParseObservation converts a raw CSV row into a typed observation.
// It fails when the row lacks a location, an ISO code, or a parseable
// date; unparseable numeric cells become absent values, never errors.
func ParseObservation(raw RawRecord) (Observation, error) {
	location := strings.TrimSpace(raw.Location)
	iso := strings.TrimSpace(raw.ISOCode)
	if location == "" {
		return Observation{}, fmt.Errorf("missing location")
	}
	if iso == "" {
		return Observation{}, fmt.Errorf("missing iso_code for %q", location)
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw.Date), time.UTC)
	if err != nil {
		return Observation{}, fmt.Errorf("parse date for %q: %w", location, err)
	}

	return Observation{
		ISOCode:   iso,
		Continent: strings.TrimSpace(raw.Continent),
		Country:   location,
		Date:      date,

		Population:            parseOptionalFloat(raw.Population),
		TotalCases:            parseOptionalFloat(raw.TotalCases),
		NewCases:              parseOptionalFloat(raw.NewCases),
		TotalDeaths:           parseOptionalFloat(raw.TotalDeaths),
		NewDeaths:             parseOptionalFloat(raw.NewDeaths),
		TotalVaccinations:     parseOptionalFloat(raw.TotalVaccinations),
		PeopleVaccinated:      parseOptionalFloat(raw.PeopleVaccinated),
		PeopleFullyVaccinated: parseOptionalFloat(raw.PeopleFullyVaccinated),
	}, nil
}

// parseOptionalFloat parses a cell as float64, returning nil for empty or
// unparseable values. Missing propagates; it is never coerced to zero.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Clean parses and filters raw records into an ordered observation table.
// Rows that fail ParseObservation or belong to OWID aggregate
// pseudo-locations are dropped; when opts.Countries is non-empty, rows
// outside that set are filtered. The result is sorted by (country, date)
// and cumulative fields are forward-filled within each country. The input
// slice is not modified.
func Clean(records []RawRecord, opts CleanOptions) ([]Observation, CleanStats) {
	stats := CleanStats{Input: len(records)}

	keep := make(map[string]bool, len(opts.Countries))
	for _, c := range opts.Countries {
		keep[c] = true
	}

	obs := make([]Observation, 0, len(records))
	for _, raw := range records {
		o, err := ParseObservation(raw)
		if err != nil {
			stats.Dropped++
			continue
		}
		if strings.HasPrefix(o.ISOCode, owidAggregatePrefix) {
			stats.Dropped++
			continue
		}
		if len(keep) > 0 && !keep[o.Country] {
			stats.Filtered++
			continue
		}
		obs = append(obs, o)
	}

	sort.SliceStable(obs, func(i, j int) bool {
		if obs[i].Country != obs[j].Country {
			return obs[i].Country < obs[j].Country
		}
		return obs[i].Date.Before(obs[j].Date)
	})

	forwardFill(obs)

	stats.Kept = len(obs)
	return obs, stats
}

// forwardFill carries the last reported cumulative value forward across
// gaps, per country. Population is included because OWID reports it on
// every row but sparse exports may not. Daily columns stay untouched.
func forwardFill(obs []Observation) {
	var country string
	var carry struct {
		population, totalCases, totalDeaths    *float64
		totalVacc, peopleVacc, peopleFullyVacc *float64
	}

	for i := range obs {
		if obs[i].Country != country {
			country = obs[i].Country
			carry.population = nil
			carry.totalCases = nil
			carry.totalDeaths = nil
			carry.totalVacc = nil
			carry.peopleVacc = nil
			carry.peopleFullyVacc = nil
		}

		fill(&obs[i].Population, &carry.population)
		fill(&obs[i].TotalCases, &carry.totalCases)
		fill(&obs[i].TotalDeaths, &carry.totalDeaths)
		fill(&obs[i].TotalVaccinations, &carry.totalVacc)
		fill(&obs[i].PeopleVaccinated, &carry.peopleVacc)
		fill(&obs[i].PeopleFullyVaccinated, &carry.peopleFullyVacc)
	}
}

// fill copies the carried value into an absent field, or refreshes the
// carry from a present field. The carry gets its own copy so later rows
// never alias earlier ones.
func fill(field, carry **float64) {
	if *field != nil {
		v := **field
		*carry = &v
		return
	}
	if *carry != nil {
		v := **carry
		*field = &v
	}
}
