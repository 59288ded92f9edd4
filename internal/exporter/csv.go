package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"artistpulse/internal/timeseries"
)

// CSVWriter provides CSV export functionality rooted at a base directory
type CSVWriter struct {
	baseDir string
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{baseDir: baseDir}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteTable flattens a metric table to CSV. Columns are the date followed
// by the table's label keys and metric names in sorted order; undefined
// metric values render as empty cells.
func (w *CSVWriter) WriteTable(filePath string, t timeseries.Table) error {
	headers, records := TableRecords(t)
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// TableRecords converts a table to CSV headers and string records.
func TableRecords(t timeseries.Table) ([]string, [][]string) {
	labelKeys := map[string]bool{}
	metricKeys := map[string]bool{}
	for _, r := range t.Records() {
		for k := range r.Labels {
			labelKeys[k] = true
		}
		for k := range r.Metrics {
			metricKeys[k] = true
		}
	}

	labels := sortedKeys(labelKeys)
	metrics := sortedKeys(metricKeys)

	headers := append([]string{"date"}, labels...)
	headers = append(headers, metrics...)

	records := make([][]string, 0, t.Len())
	for _, r := range t.Records() {
		row := make([]string, 0, len(headers))
		row = append(row, formatDate(r.Date))
		for _, k := range labels {
			row = append(row, r.Labels[k])
		}
		for _, k := range metrics {
			if v, ok := r.Metrics[k]; ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, "")
			}
		}
		records = append(records, row)
	}
	return headers, records
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// resolvePath resolves a relative path into the export base directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}
