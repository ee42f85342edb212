package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{200, "A+"}, // bonus can push overall past 100
		{95, "A+"},
		{94.999, "A"},
		{90, "A"},
		{85, "A-"}, // boundary belongs to the higher band
		{84.999, "B+"},
		{80, "B+"},
		{75, "B"},
		{70, "B-"},
		{69.999, "C+"},
		{67, "C+"},
		{63, "C"},
		{60, "C-"},
		{59.999, "F"},
		{0, "F"},
		{-5, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.score), "score %v", tt.score)
	}
}
