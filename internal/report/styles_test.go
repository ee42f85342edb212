package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreFillColor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"well above threshold", 95, greenFillColor},
		{"exactly seventy", 70, greenFillColor},
		{"just under seventy", 69.999, yellowFillColor},
		{"exactly sixty", 60, yellowFillColor},
		{"just under sixty", 59.999, redFillColor},
		{"zero", 0, redFillColor},
		{"above one hundred", 120, greenFillColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreFillColor(tt.score))
		})
	}
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		maxWidth float64
		want     float64
	}{
		{"empty values", nil, 20, 2},
		{"short values get padding", []string{"CLO 1", "85"}, 20, 7},
		{"long value hits the cap", []string{"a very long student identifier"}, 20, 20},
		{"summary cap", []string{"Students Above 80%"}, 25, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnWidth(tt.values, tt.maxWidth))
		})
	}
}

func TestRenderScore(t *testing.T) {
	assert.Equal(t, "83.08", renderScore(83.08))
	assert.Equal(t, "100", renderScore(100))
	assert.Equal(t, "72.5", renderScore(72.5))
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "A1", cellName(1, 1))
	assert.Equal(t, "D3", cellName(4, 3))
	assert.Equal(t, "AA10", cellName(27, 10))
}
