package pdfsource

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// span is a run of glyphs in PDF user space
type span struct {
	text     strings.Builder
	font     string
	size     float64
	x0, x1   float64
	baseline float64
}

// buildSpans merges glyph-level text into runs sharing font, size and
// baseline. A space is inserted when the gap between glyphs exceeds
// wordSpace × size; a gap beyond spanBreak × size starts a new run.
func buildSpans(texts []pdf.Text, config Config) []*span {
	var spans []*span
	var cur *span

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if cur != nil && cur.accepts(t, config) {
			gap := t.X - cur.x1
			if gap > config.WordSpaceRatio*cur.size && !cur.endsWithSpace() && !strings.HasPrefix(t.S, " ") {
				cur.text.WriteByte(' ')
			}
			cur.text.WriteString(t.S)
			cur.x1 = math.Max(cur.x1, t.X+t.W)
			continue
		}

		cur = &span{
			font:     t.Font,
			size:     t.FontSize,
			x0:       t.X,
			x1:       t.X + t.W,
			baseline: t.Y,
		}
		cur.text.WriteString(t.S)
		spans = append(spans, cur)
	}

	return spans
}

// accepts reports whether glyph t continues the run
func (s *span) accepts(t pdf.Text, config Config) bool {
	if t.Font != s.font || math.Abs(t.FontSize-s.size) > 0.01 {
		return false
	}
	if math.Abs(t.Y-s.baseline) > config.BaselineTolerance {
		return false
	}
	gap := t.X - s.x1
	// glyphs that step backwards belong to a new run
	if gap < -0.5*s.size {
		return false
	}
	return gap <= config.SpanBreakRatio*s.size
}

func (s *span) endsWithSpace() bool {
	str := s.text.String()
	return strings.HasSuffix(str, " ")
}

// content returns the run text
func (s *span) content() string {
	return s.text.String()
}
