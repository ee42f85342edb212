package report

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Fill colors keyed by score band, and the university header purple.
const (
	headerFillColor = "6B2C91"
	greenFillColor  = "90EE90"
	yellowFillColor = "FFFF99"
	redFillColor    = "FFB6C1"
)

// Column width caps per sheet, in Excel width units.
const (
	mainSheetWidthCap    = 20.0
	summarySheetWidthCap = 25.0
	methodSheetWidth     = 80.0
)

// ScoreFillColor returns the background fill hex for a numeric score cell:
// green at 70 and above, yellow from 60 up to 70, red below 60.
func ScoreFillColor(score float64) string {
	switch {
	case score >= 70:
		return greenFillColor
	case score >= 60:
		return yellowFillColor
	default:
		return redFillColor
	}
}

// ColumnWidth sizes a column to its longest rendered value plus padding,
// capped so a single runaway value cannot blow up the layout.
func ColumnWidth(values []string, maxWidth float64) float64 {
	maxLen := 0
	for _, v := range values {
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}
	width := float64(maxLen + 2)
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// renderScore formats a score the way it appears in a cell, for width
// calculations.
func renderScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// cellName converts 1-based column/row coordinates to an A1 reference.
// Coordinates here are always small and positive, so the conversion
// cannot fail.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// colName returns the column letter for a 1-based column number.
func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
