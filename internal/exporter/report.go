package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"artistpulse/internal/services"
)

// ReportService generates full dashboard reports on disk
type ReportService struct {
	dashboard *services.DashboardService
	csv       *CSVWriter
	excel     *ExcelWriter
	baseDir   string
	logger    *slog.Logger
}

// NewReportService creates a new report service writing under baseDir
func NewReportService(dashboard *services.DashboardService, baseDir string, logger *slog.Logger) *ReportService {
	return &ReportService{
		dashboard: dashboard,
		csv:       NewCSVWriter(baseDir),
		excel:     NewExcelWriter(baseDir),
		baseDir:   baseDir,
		logger:    logger.With(slog.String("component", "report_service")),
	}
}

// Manifest describes one completed report run
type Manifest struct {
	RunID     string    `json:"run_id"`
	Period    string    `json:"period"`
	CreatedAt time.Time `json:"created_at"`
	Files     []string  `json:"files"`
}

// Generate builds the dashboard payloads for period and writes them in the
// requested formats ("csv", "xlsx", "json"). Returns the run manifest.
func (s *ReportService) Generate(ctx context.Context, period string, formats []string) (*Manifest, error) {
	runID := uuid.New().String()[:8]

	s.logger.InfoContext(ctx, "generating report",
		slog.String("run_id", runID),
		slog.String("period", period),
	)

	data, err := s.collect(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to collect report data: %w", err)
	}

	manifest := &Manifest{
		RunID:     runID,
		Period:    period,
		CreatedAt: time.Now(),
	}

	for _, format := range formats {
		switch format {
		case "csv":
			files, err := s.writeCSV(runID, data)
			if err != nil {
				return nil, err
			}
			manifest.Files = append(manifest.Files, files...)
		case "xlsx":
			name := fmt.Sprintf("report_%s.xlsx", runID)
			if err := s.excel.WriteReport(name, *data); err != nil {
				return nil, err
			}
			manifest.Files = append(manifest.Files, name)
		case "json":
			name := fmt.Sprintf("report_%s.json", runID)
			if err := s.writeJSON(name, data); err != nil {
				return nil, err
			}
			manifest.Files = append(manifest.Files, name)
		default:
			return nil, fmt.Errorf("unknown report format: %s", format)
		}
	}

	if err := s.writeJSON(fmt.Sprintf("manifest_%s.json", runID), manifest); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "report complete",
		slog.String("run_id", runID),
		slog.Int("file_count", len(manifest.Files)),
	)
	return manifest, nil
}

// collect pulls all four dashboard views for the period
func (s *ReportService) collect(ctx context.Context, period string) (*ReportData, error) {
	overview, err := s.dashboard.Overview(ctx, period)
	if err != nil {
		return nil, err
	}
	audience, err := s.dashboard.Audience(ctx, period)
	if err != nil {
		return nil, err
	}
	content, err := s.dashboard.Content(ctx, period)
	if err != nil {
		return nil, err
	}
	revenue, err := s.dashboard.Revenue(ctx, period)
	if err != nil {
		return nil, err
	}
	return &ReportData{
		Period:   period,
		Overview: overview,
		Audience: audience,
		Content:  content,
		Revenue:  revenue,
	}, nil
}

// writeCSV writes the tabular views as individual CSV files
func (s *ReportService) writeCSV(runID string, data *ReportData) ([]string, error) {
	var files []string

	streams := fmt.Sprintf("daily_streams_%s.csv", runID)
	records := make([][]string, 0, len(data.Overview.DailyStreams))
	for _, p := range data.Overview.DailyStreams {
		records = append(records, []string{formatDate(p.X), formatFloat(p.Y)})
	}
	if err := s.csv.WriteCSV(streams, WriteOptions{
		Headers:   []string{"date", "streams"},
		Records:   records,
		BOMPrefix: true,
	}); err != nil {
		return nil, err
	}
	files = append(files, streams)

	songs := fmt.Sprintf("songs_%s.csv", runID)
	songRecords := make([][]string, 0, len(data.Content.Songs))
	for _, song := range data.Content.Songs {
		songRecords = append(songRecords, []string{
			song.Song,
			formatFloat(song.Streams),
			formatFloat(song.StreamsPct),
			formatFloat(song.CompletionRate),
			formatFloat(song.EngagementScore),
		})
	}
	if err := s.csv.WriteCSV(songs, WriteOptions{
		Headers:   []string{"song", "streams", "share_pct", "completion_rate", "engagement_score"},
		Records:   songRecords,
		BOMPrefix: true,
	}); err != nil {
		return nil, err
	}
	files = append(files, songs)

	revenue := fmt.Sprintf("daily_revenue_%s.csv", runID)
	revRecords := make([][]string, 0, len(data.Revenue.DailyRevenue))
	for _, p := range data.Revenue.DailyRevenue {
		revRecords = append(revRecords, []string{formatDate(p.X), formatFloat(p.Y)})
	}
	if err := s.csv.WriteCSV(revenue, WriteOptions{
		Headers:   []string{"date", "revenue_usd"},
		Records:   revRecords,
		BOMPrefix: true,
	}); err != nil {
		return nil, err
	}
	files = append(files, revenue)

	return files, nil
}

// writeJSON marshals v indented to a file under the export directory
func (s *ReportService) writeJSON(name string, v interface{}) error {
	fullPath := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(fullPath, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
