// Package http provides the chi-based HTTP transport for the dashboard.
// Handlers shape service payloads as JSON for the browser UI; all errors
// render as RFC 7807 problem details through the central error handler.
// Chart rendering itself happens client-side; this layer only serves the
// ordered point, category, and heatmap structures the charts expect.
package http
