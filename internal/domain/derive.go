package domain

import "sort"

// RollingWindow is the trailing window, in days, for the smoothed
// daily-new-cases series.
const RollingWindow = 7

// DeriveMetrics returns a copy of the table with derived columns
// populated. Per-row rates are absent when their denominator is absent or
// zero. The rolling mean is computed per country over the trailing
// RollingWindow rows; the input must be ordered by (country, date), which
// is what Clean produces.
func DeriveMetrics(obs []Observation) []Observation {
	out := make([]Observation, len(obs))
	copy(out, obs)

	for i := range out {
		out[i].CasesPerMillion = perMillion(out[i].TotalCases, out[i].Population)
		out[i].DeathsPerMillion = perMillion(out[i].TotalDeaths, out[i].Population)
		out[i].MortalityRate = ratio(out[i].TotalDeaths, out[i].TotalCases)
		out[i].VaccinationRate = ratio(out[i].PeopleVaccinated, out[i].Population)
	}

	start := 0
	for i := 1; i <= len(out); i++ {
		if i == len(out) || out[i].Country != out[start].Country {
			smoothNewCases(out[start:i])
			start = i
		}
	}

	return out
}

// perMillion scales a cumulative count by population in millions.
func perMillion(count, population *float64) *float64 {
	if count == nil || population == nil || *population <= 0 {
		return nil
	}
	v := *count / (*population / 1e6)
	return &v
}

// ratio divides num by den, absent when either is absent or den is zero.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := *num / *den
	return &v
}

// smoothNewCases fills NewCasesSmoothed for one country's rows, ordered by
// date. The window is strictly trailing, never forward-looking. Leading
// entries average over however many rows exist so far; within a full or
// partial window, absent daily values are excluded from the mean, and the
// mean itself is absent when the window holds no reported values. The
// output series therefore has exactly the input's length.
func smoothNewCases(rows []Observation) {
	for i := range rows {
		lo := i - RollingWindow + 1
		if lo < 0 {
			lo = 0
		}

		var sum float64
		var n int
		for j := lo; j <= i; j++ {
			if rows[j].NewCases == nil {
				continue
			}
			sum += *rows[j].NewCases
			n++
		}
		if n == 0 {
			rows[i].NewCasesSmoothed = nil
			continue
		}
		mean := sum / float64(n)
		rows[i].NewCasesSmoothed = &mean
	}
}

// LatestSnapshots reduces the table to one row per country: the row with
// that country's most recent date. The result is sorted by country name.
// Requires (country, date) order, which Clean guarantees.
func LatestSnapshots(obs []Observation) []Observation {
	var latest []Observation
	for i := range obs {
		if len(latest) > 0 && latest[len(latest)-1].Country == obs[i].Country {
			latest[len(latest)-1] = obs[i]
			continue
		}
		latest = append(latest, obs[i])
	}
	return latest
}

// TopCountries ranks latest-date snapshots by a metric and returns at most
// n entries. The sort is stable, descending by value, ties broken by
// country name ascending. A country whose metric is absent at its latest
// date is excluded from the ranking entirely, never ranked at zero.
func TopCountries(latest []Observation, m Metric, n int) []Ranking {
	type entry struct {
		country string
		value   float64
	}

	entries := make([]entry, 0, len(latest))
	for _, o := range latest {
		v := m.Value(o)
		if v == nil {
			continue
		}
		entries = append(entries, entry{country: o.Country, value: *v})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].country < entries[j].country
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	rankings := make([]Ranking, len(entries))
	for i, e := range entries {
		rankings[i] = Ranking{Rank: i + 1, Country: e.country, Value: e.value}
	}
	return rankings
}
