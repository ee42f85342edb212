package report

import (
	"github.com/xuri/excelize/v2"

	"obecli/internal/errors"
	"obecli/internal/scoring"
)

// labelSummary is one analytics row of the summary sheet.
type labelSummary struct {
	Label       string
	Average     float64
	AtOrAbove80 int
	Below60     int
	Students    int
}

// summarize computes per-label analytics across all students. Only
// students that actually have a score for the label contribute; an
// omitted score is absence, not a zero.
func summarize(table map[string]map[string]float64, labels []string) []labelSummary {
	summaries := make([]labelSummary, 0, len(labels))
	for _, label := range labels {
		s := labelSummary{Label: label}
		var sum float64
		for _, scores := range table {
			score, ok := scores[label]
			if !ok {
				continue
			}
			s.Students++
			sum += score
			if score >= 80 {
				s.AtOrAbove80++
			}
			if score < 60 {
				s.Below60++
			}
		}
		if s.Students > 0 {
			s.Average = scoring.Round2(sum / float64(s.Students))
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// writeSummarySheet writes the two stacked analytics blocks: CLO
// performance first, then PLO performance.
func (r *Renderer) writeSummarySheet(f *excelize.File, data *ReportData, cloColumns, ploColumns []string) error {
	if _, err := f.NewSheet(SummarySheetName); err != nil {
		return errors.NewExportError("failed to create summary sheet", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return errors.NewExportError("failed to create summary title style", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return errors.NewExportError("failed to create summary header style", err)
	}

	rendered := make([][]string, 4)

	row := 1
	blocks := []struct {
		title     string
		labelName string
		summaries []labelSummary
	}{
		{"CLO Performance Summary", "CLO", summarize(data.CLOScores, cloColumns)},
		{"PLO Performance Summary", "PLO", summarize(data.PLOScores, ploColumns)},
	}

	for _, block := range blocks {
		titleCell := cellName(1, row)
		if err := f.SetCellValue(SummarySheetName, titleCell, block.title); err != nil {
			return errors.NewExportError("failed to write summary title", err)
		}
		if err := f.SetCellStyle(SummarySheetName, titleCell, titleCell, titleStyle); err != nil {
			return errors.NewExportError("failed to style summary title", err)
		}
		row += 2

		headers := []string{block.labelName, "Average Score", "Students Above 80%", "Students Below 60%"}
		for col, header := range headers {
			if err := f.SetCellValue(SummarySheetName, cellName(col+1, row), header); err != nil {
				return errors.NewExportError("failed to write summary header", err)
			}
			rendered[col] = append(rendered[col], header)
		}
		if err := f.SetCellStyle(SummarySheetName, cellName(1, row), cellName(4, row), headerStyle); err != nil {
			return errors.NewExportError("failed to style summary header", err)
		}
		row++

		for _, s := range block.summaries {
			cells := []interface{}{s.Label, s.Average, s.AtOrAbove80, s.Below60}
			for col, v := range cells {
				if err := f.SetCellValue(SummarySheetName, cellName(col+1, row), v); err != nil {
					return errors.NewExportError("failed to write summary row", err)
				}
			}
			rendered[0] = append(rendered[0], s.Label)
			rendered[1] = append(rendered[1], renderScore(s.Average))
			row++
		}
		row += 2
	}

	for i, values := range rendered {
		name := colName(i + 1)
		width := ColumnWidth(values, summarySheetWidthCap)
		if err := f.SetColWidth(SummarySheetName, name, name, width); err != nil {
			return errors.NewExportError("failed to size summary column", err)
		}
	}

	return nil
}
