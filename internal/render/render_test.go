package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

func chartTable() []domain.Observation {
	base := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	var obs []domain.Observation
	for _, country := range []string{"Germany", "Kenya"} {
		for i := 0; i < 10; i++ {
			o := domain.Observation{Country: country, ISOCode: country[:3], Date: base.AddDate(0, 0, i)}
			o.CasesPerMillion = domain.Float(float64((i + 1) * 100))
			obs = append(obs, o)
		}
	}
	return obs
}

func TestTimeSeries_Render(t *testing.T) {
	t.Run("writes a png", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cases.png")
		c := NewTimeSeries(domain.MetricCasesPerMillion, "Cases per Million", path)

		require.NoError(t, c.Render(chartTable()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("missing metric column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vacc.png")
		c := NewTimeSeries(domain.MetricVaccinationRate, "Vaccination Rate", path)

		err := c.Render(chartTable())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMetricMissing))
		assert.NoFileExists(t, path)
	})
}

func TestComparison_Render(t *testing.T) {
	t.Run("writes a png", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "compare.png")
		c := NewComparison(domain.MetricCasesPerMillion, "Cases per Million", path)

		require.NoError(t, c.Render(chartTable()))
		assert.FileExists(t, path)
	})

	t.Run("missing metric column", func(t *testing.T) {
		c := NewComparison(domain.MetricMortalityRate, "Mortality", filepath.Join(t.TempDir(), "m.png"))
		err := c.Render(chartTable())
		assert.True(t, errors.Is(err, ErrMetricMissing))
	})
}

func TestChoropleth_Render(t *testing.T) {
	t.Run("writes an html map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.html")
		c := NewChoropleth(domain.MetricCasesPerMillion, "Global Cases per Million", path)

		require.NoError(t, c.Render(chartTable()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Germany")
	})

	t.Run("missing metric column", func(t *testing.T) {
		c := NewChoropleth(domain.MetricVaccinationRate, "Vaccination", filepath.Join(t.TempDir(), "v.html"))
		err := c.Render(chartTable())
		assert.True(t, errors.Is(err, ErrMetricMissing))
	})
}
