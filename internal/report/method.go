package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"obecli/internal/errors"
	"obecli/internal/schema"
	"obecli/internal/scoring"
)

// methodSheetLines builds the human-readable explanation of the fixed
// overall-grade formula for the given rubric weights. Rows holding section
// headers are returned separately so they can be bolded.
func methodSheetLines(overallWeights map[string]float64) (lines []string, boldRows []int) {
	labels := schema.SortLabels(labelKeys(overallWeights))

	var totalWeight float64
	terms := make([]string, 0, len(labels))
	for _, label := range labels {
		weight := overallWeights[label]
		totalWeight += weight
		terms = append(terms, fmt.Sprintf("%s×%s", strings.ReplaceAll(label, " ", ""), percent(weight)))
	}
	formula := fmt.Sprintf("Formula: Overall Grade = (%s) ÷ %s + Bonus",
		strings.Join(terms, " + "), percent(totalWeight))

	lines = append(lines,
		"Overall Grade Calculation Method",
		"",
		"This report uses the same calculation method as the instructor's course spreadsheet.",
		"",
		formula,
		"",
		"Explanation:",
	)
	boldRows = append(boldRows, len(lines))

	for _, label := range labels {
		lines = append(lines, fmt.Sprintf("• %s weight: %s", label, percent(overallWeights[label])))
	}
	lines = append(lines,
		fmt.Sprintf("• Total active weight: %s (CLOs without assessments carry no weight)", percent(totalWeight)),
		fmt.Sprintf("• Division by %s scales the score to represent full course performance", percent(totalWeight)),
		"• Bonus points are added after the weighted calculation",
		"",
		"This method ensures:",
	)
	boldRows = append(boldRows, len(lines))

	lines = append(lines,
		"• Fair weighting based on actual assessment importance",
		"• No penalty for unassessed CLOs",
		"• Consistency with the instructor's grading system",
		"",
		"Generated by the CLO/PLO Mapping Tool",
	)

	return lines, boldRows
}

// writeMethodSheet writes the static calculation-method explanation so
// report consumers can audit the overall-grade methodology.
func (r *Renderer) writeMethodSheet(f *excelize.File, overallWeights map[string]float64) error {
	if _, err := f.NewSheet(MethodSheetName); err != nil {
		return errors.NewExportError("failed to create method sheet", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: headerFillColor},
	})
	if err != nil {
		return errors.NewExportError("failed to create method title style", err)
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return errors.NewExportError("failed to create method section style", err)
	}

	lines, boldRows := methodSheetLines(overallWeights)
	for i, line := range lines {
		if line == "" {
			continue
		}
		if err := f.SetCellValue(MethodSheetName, cellName(1, i+1), line); err != nil {
			return errors.NewExportError("failed to write method line", err)
		}
	}

	if err := f.SetCellStyle(MethodSheetName, "A1", "A1", titleStyle); err != nil {
		return errors.NewExportError("failed to style method title", err)
	}
	for _, row := range boldRows {
		cell := cellName(1, row)
		if err := f.SetCellStyle(MethodSheetName, cell, cell, sectionStyle); err != nil {
			return errors.NewExportError("failed to style method section header", err)
		}
	}

	if err := f.SetColWidth(MethodSheetName, "A", "A", methodSheetWidth); err != nil {
		return errors.NewExportError("failed to size method column", err)
	}

	return nil
}

func labelKeys(weights map[string]float64) []string {
	keys := make([]string, 0, len(weights))
	for label := range weights {
		keys = append(keys, label)
	}
	return keys
}

// percent renders a fractional weight as a percentage, e.g. 0.15 -> "15%".
// Rounding to two decimals keeps accumulated float error out of the text.
func percent(fraction float64) string {
	return strconv.FormatFloat(scoring.Round2(fraction*100), 'f', -1, 64) + "%"
}
