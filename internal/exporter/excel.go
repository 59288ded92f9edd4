package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"artistpulse/internal/services"
	"artistpulse/internal/timeseries"
)

// ExcelWriter generates XLSX workbooks from dashboard payloads
type ExcelWriter struct {
	baseDir string
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(baseDir string) *ExcelWriter {
	return &ExcelWriter{baseDir: baseDir}
}

// ReportData bundles the per-view payloads that make up one report
type ReportData struct {
	Period   string
	Overview *services.OverviewPayload
	Audience *services.AudiencePayload
	Content  *services.ContentPayload
	Revenue  *services.RevenuePayload
}

// WriteReport writes a multi-sheet workbook with one sheet per dashboard view
func (w *ExcelWriter) WriteReport(filePath string, data ReportData) error {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(w.baseDir, filePath)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := w.writeOverviewSheet(f, headerStyle, data); err != nil {
		return err
	}
	if err := w.writeAudienceSheet(f, headerStyle, data); err != nil {
		return err
	}
	if err := w.writeContentSheet(f, headerStyle, data); err != nil {
		return err
	}
	if err := w.writeRevenueSheet(f, headerStyle, data); err != nil {
		return err
	}

	// The default sheet was replaced by Overview
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeOverviewSheet(f *excelize.File, headerStyle int, data ReportData) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	f.SetCellValue(sheet, "A1", "Period")
	f.SetCellValue(sheet, "B1", data.Period)

	row := 3
	if data.Overview != nil {
		if err := setRow(f, sheet, row, headerStyle, "Metric", "Value", "Change"); err != nil {
			return err
		}
		row++
		for _, card := range data.Overview.Cards {
			f.SetCellValue(sheet, cell("A", row), card.Label)
			f.SetCellValue(sheet, cell("B", row), card.Value)
			f.SetCellValue(sheet, cell("C", row), card.Delta)
			row++
		}

		row++
		if err := setRow(f, sheet, row, headerStyle, "Date", "Streams", "7-Day Avg"); err != nil {
			return err
		}
		row++
		ma := indexPoints(data.Overview.StreamsMA)
		for _, p := range data.Overview.DailyStreams {
			f.SetCellValue(sheet, cell("A", row), formatDate(p.X))
			f.SetCellValue(sheet, cell("B", row), p.Y)
			if v, ok := ma[p.X]; ok && !timeseries.IsUndefined(v) {
				f.SetCellValue(sheet, cell("C", row), v)
			}
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "C", 14)
	return nil
}

func (w *ExcelWriter) writeAudienceSheet(f *excelize.File, headerStyle int, data ReportData) error {
	const sheet = "Audience"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if data.Audience == nil {
		return nil
	}

	row := 1
	row, err := writeCategorySection(f, sheet, row, headerStyle, "Country", data.Audience.Countries)
	if err != nil {
		return err
	}
	row, err = writeCategorySection(f, sheet, row, headerStyle, "Age Group", data.Audience.AgeGroups)
	if err != nil {
		return err
	}
	if _, err = writeCategorySection(f, sheet, row, headerStyle, "Gender", data.Audience.Genders); err != nil {
		return err
	}

	// Engagement heatmap in its own block to the right
	hm := data.Audience.Engagement
	f.SetCellValue(sheet, "E1", "Engagement")
	for j, col := range hm.Cols {
		c, err := excelize.CoordinatesToCellName(6+j, 2)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, c, col)
		f.SetCellStyle(sheet, c, c, headerStyle)
	}
	for i, rowName := range hm.Rows {
		c, err := excelize.CoordinatesToCellName(5, 3+i)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, c, rowName)
		for j := range hm.Cols {
			if hm.Values[i][j] == nil {
				continue
			}
			vc, err := excelize.CoordinatesToCellName(6+j, 3+i)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, vc, *hm.Values[i][j])
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "E", "E", 22)
	return nil
}

func (w *ExcelWriter) writeContentSheet(f *excelize.File, headerStyle int, data ReportData) error {
	const sheet = "Content"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if data.Content == nil {
		return nil
	}

	if err := setRow(f, sheet, 1, headerStyle,
		"Song", "Streams", "Share %", "Completion", "Saves", "Shares", "Engagement"); err != nil {
		return err
	}
	for i, song := range data.Content.Songs {
		row := i + 2
		f.SetCellValue(sheet, cell("A", row), song.Song)
		f.SetCellValue(sheet, cell("B", row), song.Streams)
		f.SetCellValue(sheet, cell("C", row), song.StreamsPct)
		f.SetCellValue(sheet, cell("D", row), song.CompletionRate)
		f.SetCellValue(sheet, cell("E", row), song.Saves)
		f.SetCellValue(sheet, cell("F", row), song.Shares)
		f.SetCellValue(sheet, cell("G", row), song.EngagementScore)
	}

	f.SetColWidth(sheet, "A", "A", 28)
	return nil
}

func (w *ExcelWriter) writeRevenueSheet(f *excelize.File, headerStyle int, data ReportData) error {
	const sheet = "Revenue"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if data.Revenue == nil {
		return nil
	}

	row := 1
	row, err := writeCategorySection(f, sheet, row, headerStyle, "Platform", data.Revenue.ByPlatform)
	if err != nil {
		return err
	}
	if _, err = writeCategorySection(f, sheet, row, headerStyle, "Projection", data.Revenue.Projection); err != nil {
		return err
	}

	f.SetCellValue(sheet, "E1", "Date")
	f.SetCellValue(sheet, "F1", "Revenue")
	f.SetCellValue(sheet, "G1", "Cumulative")
	f.SetCellStyle(sheet, "E1", "G1", headerStyle)
	cum := indexPoints(data.Revenue.CumulativeRev)
	for i, p := range data.Revenue.DailyRevenue {
		row := i + 2
		f.SetCellValue(sheet, cell("E", row), formatDate(p.X))
		f.SetCellValue(sheet, cell("F", row), p.Y)
		if v, ok := cum[p.X]; ok {
			f.SetCellValue(sheet, cell("G", row), v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "E", "E", 14)
	return nil
}

// writeCategorySection writes a labeled two-column block and returns the next
// free row, leaving one blank row after the block.
func writeCategorySection(f *excelize.File, sheet string, row, headerStyle int, label string, values []timeseries.CategoryValue) (int, error) {
	if err := setRow(f, sheet, row, headerStyle, label, "Value"); err != nil {
		return row, err
	}
	row++
	for _, cv := range values {
		f.SetCellValue(sheet, cell("A", row), cv.Category)
		if !timeseries.IsUndefined(cv.Value) {
			f.SetCellValue(sheet, cell("B", row), cv.Value)
		}
		row++
	}
	return row + 1, nil
}

// setRow writes a styled header row starting at column A
func setRow(f *excelize.File, sheet string, row, style int, values ...string) error {
	for i, v := range values {
		c, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, c, v)
		if err := f.SetCellStyle(sheet, c, c, style); err != nil {
			return err
		}
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// indexPoints maps a point slice by its date for joining series
func indexPoints(points []timeseries.Point) map[time.Time]float64 {
	m := make(map[time.Time]float64, len(points))
	for _, p := range points {
		m[p.X] = p.Y
	}
	return m
}
