package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func obsRow(country string, n int) Observation {
	return Observation{Country: country, ISOCode: country[:3], Date: day(n)}
}

func TestDeriveMetrics_PerMillion(t *testing.T) {
	t.Run("present iff population present and non-zero", func(t *testing.T) {
		a := obsRow("CountryA", 0)
		a.Population = Float(1_000_000)
		a.TotalCases = Float(1000)
		b := obsRow("CountryB", 0)
		b.TotalCases = Float(500)

		out := DeriveMetrics([]Observation{a, b})

		require.NotNil(t, out[0].CasesPerMillion)
		assert.Equal(t, 1000.0, *out[0].CasesPerMillion)
		assert.Nil(t, out[1].CasesPerMillion)
	})

	t.Run("zero population yields absent rate", func(t *testing.T) {
		o := obsRow("CountryA", 0)
		o.Population = Float(0)
		o.TotalCases = Float(1000)

		out := DeriveMetrics([]Observation{o})

		assert.Nil(t, out[0].CasesPerMillion)
		assert.Nil(t, out[0].DeathsPerMillion)
	})

	t.Run("mortality and vaccination rates", func(t *testing.T) {
		o := obsRow("CountryA", 0)
		o.Population = Float(2_000_000)
		o.TotalCases = Float(10_000)
		o.TotalDeaths = Float(200)
		o.PeopleVaccinated = Float(500_000)

		out := DeriveMetrics([]Observation{o})

		require.NotNil(t, out[0].MortalityRate)
		assert.InDelta(t, 0.02, *out[0].MortalityRate, 1e-12)
		require.NotNil(t, out[0].VaccinationRate)
		assert.InDelta(t, 0.25, *out[0].VaccinationRate, 1e-12)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		o := obsRow("CountryA", 0)
		o.Population = Float(1_000_000)
		o.TotalCases = Float(1000)
		in := []Observation{o}

		DeriveMetrics(in)

		assert.Nil(t, in[0].CasesPerMillion)
	})
}

func TestDeriveMetrics_RollingMean(t *testing.T) {
	t.Run("same length with partial leading window", func(t *testing.T) {
		daily := []float64{7, 14, 21, 28, 35, 42, 49, 56, 63, 70}
		in := make([]Observation, len(daily))
		for i, v := range daily {
			in[i] = obsRow("CountryA", i)
			in[i].NewCases = Float(v)
		}

		out := DeriveMetrics(in)
		require.Len(t, out, len(daily))

		// Leading entries average the rows available so far.
		require.NotNil(t, out[0].NewCasesSmoothed)
		assert.InDelta(t, 7.0, *out[0].NewCasesSmoothed, 1e-9)
		require.NotNil(t, out[2].NewCasesSmoothed)
		assert.InDelta(t, 14.0, *out[2].NewCasesSmoothed, 1e-9) // (7+14+21)/3

		// From index 6 on, a full 7-day trailing window applies.
		require.NotNil(t, out[6].NewCasesSmoothed)
		assert.InDelta(t, 28.0, *out[6].NewCasesSmoothed, 1e-9) // mean(7..49)
		require.NotNil(t, out[9].NewCasesSmoothed)
		assert.InDelta(t, 49.0, *out[9].NewCasesSmoothed, 1e-9) // mean(21..70)
	})

	t.Run("absent daily values excluded from the mean", func(t *testing.T) {
		in := []Observation{obsRow("CountryA", 0), obsRow("CountryA", 1), obsRow("CountryA", 2)}
		in[0].NewCases = Float(10)
		in[2].NewCases = Float(30)

		out := DeriveMetrics(in)

		require.NotNil(t, out[1].NewCasesSmoothed)
		assert.InDelta(t, 10.0, *out[1].NewCasesSmoothed, 1e-9)
		require.NotNil(t, out[2].NewCasesSmoothed)
		assert.InDelta(t, 20.0, *out[2].NewCasesSmoothed, 1e-9)
	})

	t.Run("window never crosses countries", func(t *testing.T) {
		a := obsRow("CountryA", 0)
		a.NewCases = Float(1000)
		b := obsRow("CountryB", 1)
		b.NewCases = Float(10)

		out := DeriveMetrics([]Observation{a, b})

		require.NotNil(t, out[1].NewCasesSmoothed)
		assert.InDelta(t, 10.0, *out[1].NewCasesSmoothed, 1e-9)
	})

	t.Run("all-absent window yields absent mean", func(t *testing.T) {
		in := []Observation{obsRow("CountryA", 0)}

		out := DeriveMetrics(in)

		assert.Nil(t, out[0].NewCasesSmoothed)
	})
}

func TestLatestSnapshots(t *testing.T) {
	a1 := obsRow("CountryA", 0)
	a2 := obsRow("CountryA", 5)
	b1 := obsRow("CountryB", 3)

	latest := LatestSnapshots([]Observation{a1, a2, b1})

	require.Len(t, latest, 2)
	assert.Equal(t, "CountryA", latest[0].Country)
	assert.Equal(t, day(5), latest[0].Date)
	assert.Equal(t, "CountryB", latest[1].Country)
}

func TestTopCountries(t *testing.T) {
	snapshot := func(name string, cases *float64) Observation {
		o := Observation{Country: name, Date: day(0)}
		o.TotalCases = cases
		return o
	}

	t.Run("descending with ties broken by name", func(t *testing.T) {
		latest := []Observation{
			snapshot("Brazil", Float(500)),
			snapshot("Germany", Float(900)),
			snapshot("Albania", Float(500)),
			snapshot("Kenya", Float(100)),
		}

		top := TopCountries(latest, MetricTotalCases, 3)

		require.Len(t, top, 3)
		assert.Equal(t, Ranking{Rank: 1, Country: "Germany", Value: 900}, top[0])
		assert.Equal(t, Ranking{Rank: 2, Country: "Albania", Value: 500}, top[1])
		assert.Equal(t, Ranking{Rank: 3, Country: "Brazil", Value: 500}, top[2])
	})

	t.Run("absent metric excludes the country", func(t *testing.T) {
		latest := []Observation{
			snapshot("Germany", Float(900)),
			snapshot("Kenya", nil),
		}

		top := TopCountries(latest, MetricTotalCases, 10)

		require.Len(t, top, 1)
		assert.Equal(t, "Germany", top[0].Country)
	})

	t.Run("no duplicate countries", func(t *testing.T) {
		latest := []Observation{
			snapshot("Germany", Float(900)),
			snapshot("Kenya", Float(100)),
		}

		top := TopCountries(latest, MetricTotalCases, 10)

		seen := map[string]bool{}
		for _, r := range top {
			assert.False(t, seen[r.Country])
			seen[r.Country] = true
		}
	})
}

func TestMetricByName(t *testing.T) {
	m, ok := MetricByName("cases_per_million")
	require.True(t, ok)
	assert.Equal(t, "Cases per Million", m.Title)

	_, ok = MetricByName("no_such_column")
	assert.False(t, ok)
}
