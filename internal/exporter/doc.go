// Package exporter provides file export functionality for dashboard data.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers, streaming,
// and UTF-8 BOM for Excel compatibility.
//
// ExcelWriter: Generates a multi-sheet XLSX workbook holding the overview,
// audience, content, and revenue views of a reporting period.
//
// ReportService: Orchestrates a full report run, pulling the dashboard
// payloads for a period and writing them out in the requested formats under
// the configured export directory.
package exporter
