package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

// Choropleth renders one interactive HTML world map shading countries by
// the latest value of a metric. It implements pipeline.Renderer.
type Choropleth struct {
	metric domain.Metric
	title  string
	path   string
}

// NewChoropleth creates a world-map renderer for the metric, writing to
// path.
func NewChoropleth(metric domain.Metric, title, path string) *Choropleth {
	return &Choropleth{metric: metric, title: title, path: path}
}

// Name identifies the artifact in logs.
func (c *Choropleth) Name() string { return "map:" + c.path }

// Render builds and saves the map. Countries whose metric is absent at
// their latest date are left unshaded rather than shown as zero.
func (c *Choropleth) Render(obs []domain.Observation) error {
	latest := domain.LatestSnapshots(obs)

	var data []opts.MapData
	var max float64
	for _, o := range latest {
		v := c.metric.Value(o)
		if v == nil {
			continue
		}
		data = append(data, opts.MapData{Name: o.Country, Value: *v})
		if *v > max {
			max = *v
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w", c.metric.Name, ErrMetricMissing)
	}

	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: c.title}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(max),
		}),
	)
	m.AddSeries(c.metric.Title, data)

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	defer f.Close()

	if err := m.Render(f); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close map file: %w", err)
	}
	return nil
}
