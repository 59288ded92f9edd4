// Package analytics computes the trend statistics the dashboard pages chart:
// period-over-period growth, moving averages, cumulative totals, percentile
// ranks, and simple forecasts, plus the scalar engagement metrics shown on
// summary cards.
//
// All table functions operate on timeseries.Table, return new tables, and
// follow the core's division-by-zero policy: a denominator of zero yields the
// undefined marker, never an error or infinity, so charts can render gaps.
package analytics
