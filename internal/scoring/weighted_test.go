package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedMean(t *testing.T) {
	tests := []struct {
		name   string
		pairs  []WeightedValue
		want   float64
		wantOK bool
	}{
		{
			name:   "empty pairs",
			pairs:  nil,
			wantOK: false,
		},
		{
			name:   "all zero weights",
			pairs:  []WeightedValue{{Value: 80, Weight: 0}, {Value: 60, Weight: 0}},
			wantOK: false,
		},
		{
			name:   "single pair",
			pairs:  []WeightedValue{{Value: 73.5, Weight: 0.2}},
			want:   73.5,
			wantOK: true,
		},
		{
			name: "weights normalize even when they do not sum to one",
			pairs: []WeightedValue{
				{Value: 100, Weight: 0.15},
				{Value: 100, Weight: 0.15},
				{Value: 100, Weight: 0.35},
			},
			want:   100,
			wantOK: true,
		},
		{
			name: "mixed values",
			pairs: []WeightedValue{
				{Value: 80, Weight: 0.6},
				{Value: 60, Weight: 0.4},
			},
			want:   72,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeightedMean(tt.pairs)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 83.08, Round2(83.076923), 1e-9)
	assert.InDelta(t, 83.07, Round2(83.074999), 1e-9)
	assert.InDelta(t, 0.0, Round2(0.0049), 1e-9)
	assert.InDelta(t, 100.0, Round2(99.999), 1e-9)
}
