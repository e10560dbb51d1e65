package owid

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `iso_code,continent,location,date,total_cases,new_cases,total_deaths,new_deaths,total_vaccinations,people_vaccinated,people_fully_vaccinated,population,extra_column
DEU,Europe,Germany,2021-03-14,2558455,10790,73371,70,9087479,6353697,2757562,83000000,ignored
KEN,Africa,Kenya,2021-03-14,113236,671,1913,11,,,,53771296,ignored
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecode(t *testing.T) {
	t.Run("maps retained columns by header name", func(t *testing.T) {
		records, err := Decode(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Germany", records[0].Location)
		assert.Equal(t, "DEU", records[0].ISOCode)
		assert.Equal(t, "2021-03-14", records[0].Date)
		assert.Equal(t, "83000000", records[0].Population)
		assert.Equal(t, "10790", records[0].NewCases)

		// Vaccination cells are empty for Kenya; values stay empty.
		assert.Empty(t, records[1].TotalVaccinations)
		assert.Equal(t, "53771296", records[1].Population)
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		csv := "iso_code,location,date,total_cases\nKEN,Kenya,2021-03-14\n"
		records, err := Decode(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].TotalCases)
	})

	t.Run("unrecognized header", func(t *testing.T) {
		_, err := Decode(strings.NewReader("a,b,c\n1,2,3\n"))
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Decode(strings.NewReader(""))
		require.Error(t, err)
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
			_, err := io.WriteString(w, sampleCSV)
			assert.NoError(t, err)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, testLogger())
		records, err := c.Fetch(context.Background())

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := c.Fetch(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", time.Second, testLogger())
		_, err := c.Fetch(context.Background())
		require.Error(t, err)
	})
}

func TestFileSource_Fetch(t *testing.T) {
	t.Run("reads local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

		s := NewFileSource(path, testLogger())
		records, err := s.Fetch(context.Background())

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		s := NewFileSource(filepath.Join(t.TempDir(), "nope.csv"), testLogger())
		_, err := s.Fetch(context.Background())
		require.Error(t, err)
	})
}
