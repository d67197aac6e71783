package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unidoc/unioffice/measurement"
)

func TestEstimateLines(t *testing.T) {
	est := NewEstimator()
	size := pt(10)
	box := pt(100) // 20 cells per line

	tests := []struct {
		name string
		text string
		min  int
	}{
		{"empty", "", 1},
		{"short", "Ship it", 1},
		{"line breaks", "one\ntwo\r\nthree", 3},
		{"blank paragraphs", "\n\n", 3},
		{"long word", strings.Repeat("x", 45), 3},
		{"wide runes", strings.Repeat("漢字", 10), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.GreaterOrEqual(t, est.EstimateLines(tt.text, size, box), tt.min)
		})
	}

	assert.Equal(t, 1, est.EstimateLines("", size, box))
	assert.Equal(t, 3, est.EstimateLines("\n\n", size, box))
}

func TestEstimateLinesNarrowerNeverFewer(t *testing.T) {
	est := NewEstimator()
	text := "Migrate the reporting warehouse to the managed columnar store and retire the nightly batch exports"
	size := pt(18)

	prev := 0
	for w := 600; w >= 40; w -= 20 {
		lines := est.EstimateLines(text, size, measurement.Distance(w))
		assert.GreaterOrEqual(t, lines, prev, "width %dpt", w)
		prev = lines
	}
	assert.Greater(t, prev, 1)
}

func TestEstimateLinesHeuristicFloor(t *testing.T) {
	est := NewEstimator()
	text := strings.Repeat("abcd ", 40)
	size := pt(12)
	box := inch(2)
	assert.GreaterOrEqual(t, est.EstimateLines(text, size, box), heuristicLines(text, size, box))
}

func TestEstimateHeight(t *testing.T) {
	est := NewEstimator()
	size := pt(10)
	box := pt(100)

	assert.InDelta(t, 12.0, float64(est.EstimateHeight("", size, box, 1.2)), 1e-9)
	assert.InDelta(t, 36.0, float64(est.EstimateHeight("a\nb\nc", size, box, 0)), 1e-9)
	assert.InDelta(t, 30.0, float64(est.EstimateHeight("a\nb", size, box, 1.5)), 1e-9)
}
