package layout

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/unidoc/unioffice/measurement"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	// DefaultLineSpacing is the line height as a multiple of the font size.
	DefaultLineSpacing = 1.2

	// avgGlyphEm is the assumed width of one display cell in ems.
	avgGlyphEm = 0.5
)

// Estimator predicts how many lines a string wraps to in a box of a given
// width. It takes the larger of a character-count heuristic and a word wrap
// measured with the Go Regular face, so it errs towards too many lines.
//
// An Estimator caches font faces and is not safe for concurrent use.
type Estimator struct {
	font  *opentype.Font
	faces map[measurement.Distance]font.Face
}

// NewEstimator returns an Estimator. If the embedded font cannot be parsed
// only the heuristic is used.
func NewEstimator() *Estimator {
	e := &Estimator{faces: make(map[measurement.Distance]font.Face)}
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		e.font = f
	}
	return e
}

// EstimateLines returns the number of rendered lines for text. Explicit line
// breaks start a new paragraph and every paragraph, even an empty one, takes
// at least one line.
func (e *Estimator) EstimateLines(text string, fontSize, boxWidth measurement.Distance) int {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	lines := 0
	for _, para := range strings.Split(text, "\n") {
		lines += max(heuristicLines(para, fontSize, boxWidth), e.measuredLines(para, fontSize, boxWidth))
	}
	return lines
}

// EstimateHeight returns the height text needs: lines × font size × spacing.
// A lineSpacing <= 0 means DefaultLineSpacing.
func (e *Estimator) EstimateHeight(text string, fontSize, boxWidth measurement.Distance, lineSpacing float64) measurement.Distance {
	if lineSpacing <= 0 {
		lineSpacing = DefaultLineSpacing
	}
	lines := e.EstimateLines(text, fontSize, boxWidth)
	return measurement.Distance(float64(lines)*lineSpacing) * fontSize
}

func heuristicLines(para string, fontSize, boxWidth measurement.Distance) int {
	cells := runewidth.StringWidth(para)
	if cells == 0 {
		return 1
	}
	perLine := 1
	if fontSize > 0 {
		perLine = max(1, int(float64(boxWidth)/(float64(fontSize)*avgGlyphEm)))
	}
	return (cells + perLine - 1) / perLine
}

func (e *Estimator) measuredLines(para string, fontSize, boxWidth measurement.Distance) int {
	words := strings.Fields(para)
	face := e.face(fontSize)
	if len(words) == 0 || face == nil || boxWidth <= 0 {
		return 1
	}
	box := float64(boxWidth)
	space := advance(face, " ")

	lines := 1
	var used float64
	for _, w := range words {
		width := advance(face, w)
		switch {
		case width > box:
			// A word wider than the box is broken across lines.
			if used > 0 {
				lines++
			}
			n := int(math.Ceil(width / box))
			lines += n - 1
			used = width - float64(n-1)*box
		case used == 0:
			used = width
		case used+space+width <= box:
			used += space + width
		default:
			lines++
			used = width
		}
	}
	return lines
}

func (e *Estimator) face(size measurement.Distance) font.Face {
	if e.font == nil || size <= 0 {
		return nil
	}
	if f, ok := e.faces[size]; ok {
		return f
	}
	// At 72 DPI one pixel is one point.
	f, err := opentype.NewFace(e.font, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil
	}
	e.faces[size] = f
	return f
}

// advance returns the width of s in points.
func advance(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
