// Package domain models Our World in Data (OWID) COVID-19 time-series records.
//
// # Data Source
//
// Observations come from the OWID compiled dataset, published as a single
// wide CSV at
// https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/owid-covid-data.csv.
// One row per (location, date). The feed mixes countries with aggregate
// pseudo-locations ("World", "Asia", income groups); aggregates carry
// ISO codes prefixed with "OWID_" and are dropped during cleaning.
//
// # OWID Data Conventions
//
// Dates are ISO 8601 calendar dates ("2021-03-14"), interpreted as UTC
// midnight. Numeric columns are decimal strings; an empty cell means the
// value was not reported for that location and date. Missing is distinct
// from zero: vaccination columns are empty for many countries and early
// dates, and cumulative columns are empty before the first report.
//
// Cumulative columns (total_cases, total_deaths, total_vaccinations,
// people_vaccinated, people_fully_vaccinated) are running totals and are
// expected to be non-decreasing per location. Revisions upstream sometimes
// break monotonicity; that is a data-quality condition reported by the
// validate command, not repaired here.
//
// # Cleaning
//
// [Clean] drops rows missing location, ISO code, or a parseable date,
// drops OWID aggregate rows, optionally restricts to a configured country
// set, orders rows by (location, date), and forward-fills cumulative
// fields within each location so gaps between reports carry the last
// known total. Daily columns (new_cases, new_deaths) are never filled.
//
// # Derived Metrics
//
// [DeriveMetrics] adds per-row rates and a per-country rolling mean:
//
//	cases_per_million  = total_cases  / (population / 1e6)
//	deaths_per_million = total_deaths / (population / 1e6)
//	mortality_rate     = total_deaths / total_cases
//	vaccination_rate   = people_vaccinated / population
//
// A rate is absent (nil) whenever its denominator is absent or zero; no
// division fault can occur. The rolling mean of new_cases uses a trailing
// window of [RollingWindow] days. Leading entries average over the rows
// available so far (partial-window policy), so the smoothed series always
// has the same length as the input series.
//
// # Rankings
//
// [LatestSnapshots] reduces the table to each country's most recent row.
// [TopCountries] ranks those snapshots by a metric: stable descending
// sort, ties broken by country name, countries whose metric is absent at
// their latest date excluded rather than ranked at zero.
package domain
