// Package reflow breaks edited block text into positioned lines.
//
// The first line of a paragraph starts at the block's IndentX and the first
// line of a list item at its TextX, after the marker. Wrapped lines always
// start at TextX, so edited list items keep their hanging indent.
//
// Widths come from the advance widths of a resolved font when one is
// available (FontMeasurer) and from an average character width otherwise
// (Estimator).
package reflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/pagenorm/layout"
)

// ErrNoRoom is returned when the right edge leaves no room at the text column
var ErrNoRoom = errors.New("reflow: no room for text")

// Line is one output line of reflowed text
type Line struct {
	Text     string
	X        float64
	Baseline float64
	Width    float64
}

// Reflower performs greedy line breaking
type Reflower struct {
	measurer Measurer
}

// NewReflower creates a reflower that measures with m
func NewReflower(m Measurer) *Reflower {
	return &Reflower{measurer: m}
}

// Reflow breaks text into lines that end at or before maxX. Newlines in
// text force a break. A word wider than the available width is placed on a
// line of its own.
func (r *Reflower) Reflow(b *layout.Block, text string, maxX float64) ([]Line, error) {
	if b == nil {
		return nil, nil
	}

	size := b.Style.Size
	firstX := b.IndentX
	if b.IsListItem() {
		firstX = b.TextX
	}
	wrapX := b.TextX
	if wrapX < firstX && !b.IsListItem() {
		wrapX = firstX
	}

	if maxX-wrapX <= 0 || maxX-firstX <= 0 {
		return nil, fmt.Errorf("%w: block %s, text column %.2f, right edge %.2f", ErrNoRoom, b.ID, wrapX, maxX)
	}

	baseline := 0.0
	if len(b.Lines) > 0 {
		baseline = b.Lines[0].Baseline
	}
	step := r.measurer.LineHeight(size)
	space := r.measurer.Advance(" ", size)

	var lines []Line
	emit := func(words []string, width float64) {
		x := wrapX
		if len(lines) == 0 {
			x = firstX
		}
		lines = append(lines, Line{
			Text:     strings.Join(words, " "),
			X:        x,
			Baseline: baseline + float64(len(lines))*step,
			Width:    width,
		})
	}

	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			emit(nil, 0)
			continue
		}

		var current []string
		var width float64
		for _, w := range words {
			ww := r.measurer.Advance(w, size)
			avail := maxX - wrapX
			if len(lines) == 0 {
				avail = maxX - firstX
			}

			if len(current) == 0 {
				current = []string{w}
				width = ww
				continue
			}
			if width+space+ww <= avail {
				current = append(current, w)
				width += space + ww
				continue
			}
			emit(current, width)
			current = []string{w}
			width = ww
		}
		emit(current, width)
	}

	return lines, nil
}
