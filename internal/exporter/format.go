package exporter

import (
	"fmt"
	"time"

	"artistpulse/internal/timeseries"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	if timeseries.IsUndefined(f) {
		return ""
	}
	return fmt.Sprintf("%.2f", f)
}

// formatDate formats a date for CSV output; zero dates render empty
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
