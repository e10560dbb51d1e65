// Package render produces chart artifacts from the derived table: static
// PNG line and bar charts via gonum/plot, and interactive choropleth HTML
// maps via go-echarts. Renderers perform no computation beyond selecting
// columns the deriver already produced.
package render

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

// ErrMetricMissing reports that the requested metric column holds no
// values anywhere in the table. The pipeline logs it and skips the chart
// rather than aborting the run.
var ErrMetricMissing = errors.New("metric column has no values")

// TimeSeries renders one PNG line chart of a metric over time, one line
// per country. It implements pipeline.Renderer.
type TimeSeries struct {
	metric domain.Metric
	title  string
	path   string
}

// NewTimeSeries creates a line-chart renderer for the metric, writing to
// path.
func NewTimeSeries(metric domain.Metric, title, path string) *TimeSeries {
	return &TimeSeries{metric: metric, title: title, path: path}
}

// Name identifies the artifact in logs.
func (c *TimeSeries) Name() string { return "chart:" + c.path }

// Render draws and saves the chart.
func (c *TimeSeries) Render(obs []domain.Observation) error {
	series := countrySeries(obs, c.metric)
	if len(series) == 0 {
		return fmt.Errorf("%s: %w", c.metric.Name, ErrMetricMissing)
	}

	p := plot.New()
	p.Title.Text = c.title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = c.metric.Title
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	args := make([]any, 0, 2*len(series))
	for _, s := range series {
		args = append(args, s.country, s.points)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("add lines: %w", err)
	}

	if err := p.Save(14*vg.Inch, 7*vg.Inch, c.path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// Comparison renders one PNG bar chart of the latest metric value per
// country, sorted descending. It implements pipeline.Renderer.
type Comparison struct {
	metric domain.Metric
	title  string
	path   string
}

// NewComparison creates a bar-chart renderer for the metric, writing to
// path.
func NewComparison(metric domain.Metric, title, path string) *Comparison {
	return &Comparison{metric: metric, title: title, path: path}
}

// Name identifies the artifact in logs.
func (c *Comparison) Name() string { return "chart:" + c.path }

// Render draws and saves the chart.
func (c *Comparison) Render(obs []domain.Observation) error {
	latest := domain.LatestSnapshots(obs)
	ranked := domain.TopCountries(latest, c.metric, 0)
	if len(ranked) == 0 {
		return fmt.Errorf("%s: %w", c.metric.Name, ErrMetricMissing)
	}

	values := make(plotter.Values, len(ranked))
	labels := make([]string, len(ranked))
	for i, r := range ranked {
		values[i] = r.Value
		labels[i] = r.Country
	}

	p := plot.New()
	p.Title.Text = c.title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Country"
	p.Y.Label.Text = c.metric.Title

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	if err := p.Save(12*vg.Inch, 6*vg.Inch, c.path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

type series struct {
	country string
	points  plotter.XYs
}

// countrySeries extracts per-country (date, value) points for the metric,
// skipping absent values. Countries with no values at all are omitted.
// Relies on the (country, date) order the cleaner guarantees.
func countrySeries(obs []domain.Observation, metric domain.Metric) []series {
	var out []series
	for _, o := range obs {
		v := metric.Value(o)
		if v == nil {
			continue
		}
		pt := plotter.XY{X: float64(o.Date.Unix()), Y: *v}
		if len(out) > 0 && out[len(out)-1].country == o.Country {
			out[len(out)-1].points = append(out[len(out)-1].points, pt)
			continue
		}
		out = append(out, series{country: o.Country, points: plotter.XYs{pt}})
	}
	return out
}
