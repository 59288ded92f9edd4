package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/timeseries"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer := NewCSVWriter(t.TempDir())

	err := writer.WriteCSV("streams.csv", WriteOptions{
		Headers: []string{"date", "streams"},
		Records: [][]string{
			{"2026-03-01", "1000.00"},
			{"2026-03-02", "1150.00"},
		},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(writer.resolvePath("streams.csv"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(raw), "\xEF\xBB\xBF"), "BOM prefix for Excel")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xEF\xBB\xBF")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "streams"}, rows[0])
	assert.Equal(t, []string{"2026-03-02", "1150.00"}, rows[2])
}

func TestCSVWriter_CreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	writer := NewCSVWriter(base)

	err := writer.WriteCSV(filepath.Join("monthly", "march.csv"), WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "monthly", "march.csv"))
	assert.NoError(t, err)
}

func TestCSVWriter_Append(t *testing.T) {
	writer := NewCSVWriter(t.TempDir())

	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{
		Headers: []string{"date", "streams"},
		Records: [][]string{{"2026-03-01", "1000.00"}},
	}))
	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{
		Records: [][]string{{"2026-03-02", "1100.00"}},
		Append:  true,
	}))

	raw, err := os.ReadFile(writer.resolvePath("log.csv"))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestTableRecords(t *testing.T) {
	table := timeseries.New([]timeseries.Record{
		{
			Date:    day(2026, 3, 1),
			Metrics: map[string]float64{"streams": 1000, "followers": 5000},
		},
		{
			Date:    day(2026, 3, 2),
			Metrics: map[string]float64{"streams": 1100},
			Labels:  map[string]string{"platform": "Spotify"},
		},
	})

	headers, records := TableRecords(table)

	assert.Equal(t, []string{"date", "platform", "followers", "streams"}, headers,
		"date, then labels, then metrics, each sorted")
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2026-03-01", "", "5000.00", "1000.00"}, records[0])
	assert.Equal(t, []string{"2026-03-02", "Spotify", "", "1100.00"}, records[1])
}

func TestWriteTable(t *testing.T) {
	writer := NewCSVWriter(t.TempDir())
	table := timeseries.New([]timeseries.Record{
		{Date: day(2026, 3, 1), Metrics: map[string]float64{"streams": 1000}},
	})

	require.NoError(t, writer.WriteTable("table.csv", table))

	raw, err := os.ReadFile(writer.resolvePath("table.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "date,streams")
	assert.Contains(t, string(raw), "2026-03-01,1000.00")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "", formatFloat(timeseries.Undefined()), "undefined renders empty")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-03-01", formatDate(day(2026, 3, 1)))
	assert.Equal(t, "", formatDate(time.Time{}))
}
