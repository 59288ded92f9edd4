// Package timeseries provides the tabular transformation core of the dashboard.
// It models dated metric records and reshapes them into the rollups, filtered
// ranges, percentage breakdowns, and pivot tables the chart layer consumes.
//
// # Architecture
//
// The package is organized around one data model and four transformations:
//
// 1. Table: an ordered, immutable collection of dated Records
// 2. Aggregate: weekly (ISO-8601) and monthly rollups
// 3. FilterByRange: inclusive date-interval slicing
// 4. ToPercentage: absolute values to percentage-of-total
// 5. Pivot: long-format records to 2D cross-tabulation
//
// # Usage
//
// Typical flow for a chart payload:
//
//	filtered := timeseries.FilterByRange(table, start, end)
//	weekly, err := timeseries.Aggregate(filtered, timeseries.Weekly, nil)
//	if err != nil {
//	    return err
//	}
//	points := weekly.LinePoints("streams")
//
// # Immutability
//
// Every transformation returns a new Table and leaves its input untouched, so
// a single source table can feed multiple charts. Nothing in this package
// holds cross-call state; calls are safe from independent goroutines as long
// as callers do not mutate inputs concurrently.
//
// # Undefined values
//
// Calculations that would divide by zero produce math.NaN rather than an
// error, so downstream charts can render gaps. Use IsUndefined to test for
// the marker.
package timeseries
