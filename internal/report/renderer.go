// Package report renders computed score tables into a styled three-sheet
// Excel workbook: the per-student results table, a statistical summary, and
// a calculation-method explanation. Rendering is a pure function of the
// score tables and detected schema; it never recomputes or corrects scores.
package report

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"obecli/internal/errors"
	"obecli/internal/schema"
	"obecli/pkg/contracts/domain"
)

// Sheet names in the generated workbook.
const (
	MainSheetName    = "CLO PLO Results"
	SummarySheetName = "Summary"
	MethodSheetName  = "Calculation Method"
)

// outputFilePrefix plus a timestamp forms the default report file name.
const outputFilePrefix = "CLO_PLO_Results_"

// timestampLayout matches the original report naming, e.g. 20250830_142501.
const timestampLayout = "20060102_150405"

// ReportData bundles everything the renderer consumes. All fields are
// read-only to the renderer.
type ReportData struct {
	Schema         *schema.Schema
	CLOScores      domain.CLOScoreTable
	PLOScores      domain.PLOScoreTable
	Results        []domain.StudentResult
	OverallWeights map[string]float64
	Course         *domain.CourseInfo
}

// Renderer writes score tables to styled Excel workbooks.
type Renderer struct {
	logger     *slog.Logger
	reportsDir string
	now        func() time.Time
}

// NewRenderer creates a report renderer. Auto-generated output paths are
// placed under reportsDir.
func NewRenderer(logger *slog.Logger, reportsDir string) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		logger:     logger,
		reportsDir: reportsDir,
		now:        time.Now,
	}
}

// Export writes the three-sheet workbook. When outputPath is empty a
// timestamped path under the reports directory is synthesized. The resolved
// path is returned on success; on failure the error wraps the underlying
// cause and the caller still holds the score tables for a fallback
// presentation.
func (r *Renderer) Export(ctx context.Context, data *ReportData, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(r.reportsDir,
			outputFilePrefix+r.now().Format(timestampLayout)+".xlsx")
	}

	cloColumns := data.Schema.ReportCLOs()
	ploColumns := data.Schema.PLOs

	r.logger.InfoContext(ctx, "rendering report",
		slog.String("path", outputPath),
		slog.Int("students", len(data.Results)),
		slog.Any("clo_columns", cloColumns),
		slog.Any("plo_columns", ploColumns))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MainSheetName); err != nil {
		return "", errors.NewExportError("failed to create main sheet", err)
	}

	if err := r.writeMainSheet(f, data, cloColumns, ploColumns); err != nil {
		return "", err
	}
	if err := r.writeSummarySheet(f, data, cloColumns, ploColumns); err != nil {
		return "", err
	}
	if err := r.writeMethodSheet(f, data.OverallWeights); err != nil {
		return "", err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", errors.NewExportError("failed to save report workbook", err).
			WithContext("path", outputPath)
	}

	r.logger.InfoContext(ctx, "report written",
		slog.String("path", outputPath))

	return outputPath, nil
}

// writeMainSheet writes the per-student results table: one header row, then
// one row per student with CLO columns, PLO columns, the overall percentage
// and the letter grade. Missing scores stay blank, never zero.
func (r *Renderer) writeMainSheet(f *excelize.File, data *ReportData, cloColumns, ploColumns []string) error {
	headers := append([]string{"Student ID"}, cloColumns...)
	headers = append(headers, ploColumns...)
	headers = append(headers, "Overall %", "Grade")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.NewExportError("failed to create header style", err)
	}

	for col, header := range headers {
		cell := cellName(col+1, 1)
		if err := f.SetCellValue(MainSheetName, cell, header); err != nil {
			return errors.NewExportError("failed to write header cell", err)
		}
	}
	if err := f.SetCellStyle(MainSheetName, cellName(1, 1), cellName(len(headers), 1), headerStyle); err != nil {
		return errors.NewExportError("failed to style header row", err)
	}

	scoreStyles, err := r.scoreStyles(f)
	if err != nil {
		return err
	}
	gradeStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return errors.NewExportError("failed to create grade style", err)
	}

	// Rendered strings per column feed the width auto-sizing below.
	rendered := make([][]string, len(headers))
	for i, h := range headers {
		rendered[i] = []string{h}
	}

	for rowIdx, result := range data.Results {
		row := rowIdx + 2
		studentCLOs := data.CLOScores[result.StudentID]
		studentPLOs := data.PLOScores[result.StudentID]

		if err := f.SetCellValue(MainSheetName, cellName(1, row), result.StudentID); err != nil {
			return errors.NewExportError("failed to write student row", err)
		}
		rendered[0] = append(rendered[0], result.StudentID)

		col := 2
		for _, clo := range cloColumns {
			if score, ok := studentCLOs[clo]; ok {
				if err := r.writeScoreCell(f, col, row, score, scoreStyles); err != nil {
					return err
				}
				rendered[col-1] = append(rendered[col-1], renderScore(score))
			}
			col++
		}
		for _, plo := range ploColumns {
			if score, ok := studentPLOs[plo]; ok {
				if err := r.writeScoreCell(f, col, row, score, scoreStyles); err != nil {
					return err
				}
				rendered[col-1] = append(rendered[col-1], renderScore(score))
			}
			col++
		}

		if err := r.writeScoreCell(f, col, row, result.Overall, scoreStyles); err != nil {
			return err
		}
		rendered[col-1] = append(rendered[col-1], renderScore(result.Overall))
		col++

		gradeCell := cellName(col, row)
		if err := f.SetCellValue(MainSheetName, gradeCell, result.Letter); err != nil {
			return errors.NewExportError("failed to write grade cell", err)
		}
		if err := f.SetCellStyle(MainSheetName, gradeCell, gradeCell, gradeStyle); err != nil {
			return errors.NewExportError("failed to style grade cell", err)
		}
		rendered[col-1] = append(rendered[col-1], result.Letter)
	}

	for i, values := range rendered {
		name := colName(i + 1)
		width := ColumnWidth(values, mainSheetWidthCap)
		if err := f.SetColWidth(MainSheetName, name, name, width); err != nil {
			return errors.NewExportError("failed to size column", err)
		}
	}

	return nil
}

// scoreStyles builds the three banded fill styles once per workbook, keyed
// by fill color.
func (r *Renderer) scoreStyles(f *excelize.File) (map[string]int, error) {
	styles := make(map[string]int, 3)
	for _, color := range []string{greenFillColor, yellowFillColor, redFillColor} {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, errors.NewExportError("failed to create score style", err)
		}
		styles[color] = id
	}
	return styles, nil
}

func (r *Renderer) writeScoreCell(f *excelize.File, col, row int, score float64, styles map[string]int) error {
	cell := cellName(col, row)
	if err := f.SetCellValue(MainSheetName, cell, score); err != nil {
		return errors.NewExportError("failed to write score cell", err)
	}
	if err := f.SetCellStyle(MainSheetName, cell, cell, styles[ScoreFillColor(score)]); err != nil {
		return errors.NewExportError("failed to style score cell", err)
	}
	return nil
}
