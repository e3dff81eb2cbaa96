package reflow

import (
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/model"
)

// Measurer measures text for line breaking
type Measurer interface {
	// Advance returns the width of s at the given size in pixels
	Advance(s string, size float64) float64

	// LineHeight returns the baseline-to-baseline distance for a size
	LineHeight(size float64) float64
}

// FontMeasurer measures with the advance widths of a parsed font
type FontMeasurer struct {
	font        *sfnt.Font
	lineSpacing float64
}

// NewFontMeasurer creates a measurer for f with a 1.2 line spacing
func NewFontMeasurer(f *sfnt.Font) *FontMeasurer {
	return &FontMeasurer{font: f, lineSpacing: 1.2}
}

// Advance sums the glyph advances of s. Runes missing from the font
// measure as the notdef glyph.
func (m *FontMeasurer) Advance(s string, size float64) float64 {
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(size * 64)

	var total fixed.Int26_6
	for _, r := range s {
		idx, err := m.font.GlyphIndex(&buf, r)
		if err != nil {
			continue
		}
		adv, err := m.font.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		total += adv
	}
	return float64(total) / 64
}

// LineHeight returns the line spacing for size
func (m *FontMeasurer) LineHeight(size float64) float64 {
	return m.lineSpacing * size
}

// Estimator measures with an average character width, for fonts that are
// not available
type Estimator struct {
	// CharWidth is the average advance as a fraction of the size
	CharWidth float64

	lineSpacing float64
}

// NewEstimator creates an estimator with the given average character
// width ratio and a 1.25 line spacing
func NewEstimator(charWidth float64) *Estimator {
	return &Estimator{CharWidth: charWidth, lineSpacing: 1.25}
}

// EstimatorFor derives the average character width from the original
// geometry of a block. Blocks with no measurable width use 0.5.
func EstimatorFor(b *layout.Block) *Estimator {
	ratio := 0.5
	var width float64
	var chars int
	var size float64
	for _, f := range b.Fragments {
		width += f.BBox.Width()
		chars += utf8.RuneCountInString(f.Content)
		size = f.Size
	}
	if r, ok := model.SafeRatio(width, float64(chars)*size); ok && r > 0 {
		ratio = r
	}
	return NewEstimator(ratio)
}

// Advance estimates the width of s
func (e *Estimator) Advance(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * e.CharWidth * size
}

// LineHeight returns the line spacing for size
func (e *Estimator) LineHeight(size float64) float64 {
	return e.lineSpacing * size
}
