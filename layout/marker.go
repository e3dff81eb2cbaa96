package layout

import (
	"strings"
	"unicode"

	"github.com/tsawler/pagenorm/model"
	"github.com/tsawler/pagenorm/text"
)

// MarkerConfig holds configuration for bullet marker classification
type MarkerConfig struct {
	// PrimaryGlyphs are bullet glyphs normalized to CanonicalBullet. The set
	// includes placeholders that broken font encodings produce for "•".
	PrimaryGlyphs []string

	// SubGlyphs are secondary markers kept verbatim
	SubGlyphs []string

	// PlaceholderGlyphs are the primary glyphs that also occur in ordinary
	// text ("§ 12", "naïve"). They count only when followed by a space, or
	// stand alone, and the text after them does not start with a digit.
	PlaceholderGlyphs []string

	// CanonicalBullet replaces every primary glyph (default: "•")
	CanonicalBullet string

	// CombinedAnchorRatio places the content anchor at marker origin +
	// ratio × size when marker and text share a fragment (default: 0.9)
	CombinedAnchorRatio float64

	// MinGapRatio is the minimum marker-to-text gap as a fraction of the
	// marker size (default: 0.3)
	MinGapRatio float64

	// HarmonizeSizes equalizes near-equal marker sizes per font and indent
	HarmonizeSizes bool

	// HarmonizeMin and HarmonizeMax bound the sizes, relative to the group
	// median, that are replaced by the median (default: 0.7 and 1.3)
	HarmonizeMin float64
	HarmonizeMax float64

	// IndentTolerance buckets marker x positions for harmonization (default: 8px)
	IndentTolerance float64
}

// DefaultMarkerConfig returns sensible default configuration
func DefaultMarkerConfig() MarkerConfig {
	return MarkerConfig{
		PrimaryGlyphs:       []string{"•", "●", "○", "◦", "▪", "■", "∗", "✱", "·", "ï", "§", "\u0083"},
		SubGlyphs:           []string{"-", "–", "—", "−", "*", ">", "»", "›", "‣", "⁃"},
		PlaceholderGlyphs:   []string{"ï", "§", "\u0083"},
		CanonicalBullet:     "•",
		CombinedAnchorRatio: 0.9,
		MinGapRatio:         0.3,
		HarmonizeSizes:      true,
		HarmonizeMin:        0.7,
		HarmonizeMax:        1.3,
		IndentTolerance:     8.0,
	}
}

// MarkerClassifier detects bullet-start lines and locates their content anchor
type MarkerClassifier struct {
	config      MarkerConfig
	primary     map[string]bool
	sub         map[string]bool
	placeholder map[string]bool
}

// NewMarkerClassifier creates a new classifier with default configuration
func NewMarkerClassifier() *MarkerClassifier {
	return NewMarkerClassifierWithConfig(DefaultMarkerConfig())
}

// NewMarkerClassifierWithConfig creates a classifier with custom configuration
func NewMarkerClassifierWithConfig(config MarkerConfig) *MarkerClassifier {
	c := &MarkerClassifier{
		config:      config,
		primary:     make(map[string]bool, len(config.PrimaryGlyphs)),
		sub:         make(map[string]bool, len(config.SubGlyphs)),
		placeholder: make(map[string]bool, len(config.PlaceholderGlyphs)),
	}
	for _, g := range config.PrimaryGlyphs {
		c.primary[g] = true
	}
	for _, g := range config.SubGlyphs {
		c.sub[g] = true
	}
	for _, g := range config.PlaceholderGlyphs {
		c.placeholder[g] = true
	}
	return c
}

// Classify marks bullet-start lines in place and returns how many it found.
// lines must be in baseline order, as LineAggregator returns them.
func (c *MarkerClassifier) Classify(lines []*Line) int {
	count := 0
	for _, l := range lines {
		if c.classifyLine(l) {
			count++
		}
	}
	for i, l := range lines {
		if i+1 < len(lines) {
			c.attachItemText(l, lines[i+1])
		}
	}
	if c.config.HarmonizeSizes {
		c.harmonize(lines)
	}
	return count
}

// Glyph returns the normalized marker for s and whether s is a marker glyph
func (c *MarkerClassifier) Glyph(s string) (string, bool) {
	switch {
	case c.primary[s]:
		return c.config.CanonicalBullet, true
	case c.sub[s]:
		return s, true
	}
	return "", false
}

func (c *MarkerClassifier) classifyLine(l *Line) bool {
	first := -1
	for i, f := range l.Fragments {
		if !text.IsBlank(f.Content) {
			first = i
			break
		}
	}
	if first < 0 {
		return false
	}

	marker := l.Fragments[first]
	trimmed := text.Trim(marker.Content)

	if glyph, ok := c.Glyph(trimmed); ok {
		if c.placeholder[trimmed] && startsWithDigit(textAfter(l, first)) {
			return false
		}
		l.IsBulletStart = true
		l.Marker = glyph
		l.markerIdx = first
		l.MarkerSize = marker.Size

		for i := first + 1; i < len(l.Fragments); i++ {
			if text.IsBlank(l.Fragments[i].Content) {
				continue
			}
			l.contentIdx = i
			l.HasContentAnchor = true
			content := l.Fragments[i]
			c.anchor(l, content.Origin.X, content.Origin.X-marker.BBox.X1, marker.Size)
			return true
		}
		return true
	}

	glyph, ok := c.leadingGlyph(trimmed)
	if !ok {
		return false
	}
	l.IsBulletStart = true
	l.Marker = glyph
	l.markerIdx = first
	l.MarkerSize = marker.Size
	l.HasContentAnchor = true

	anchor := marker.Origin.X + c.config.CombinedAnchorRatio*marker.Size
	rawGap := anchor - marker.Origin.X - 0.5*marker.Size
	c.anchor(l, anchor, rawGap, marker.Size)
	return true
}

// attachItemText gives a lone marker the text of the next line when the
// two share a baseline and were split apart only by a link change
func (c *MarkerClassifier) attachItemText(l, next *Line) {
	if !l.IsBulletStart || l.HasContentAnchor || next.IsBulletStart || next.itemOf != nil {
		return
	}
	if next.Baseline != l.Baseline || next.Link == l.Link || text.IsBlank(next.Content) {
		return
	}
	marker, ok := l.markerFragment()
	if !ok || (c.placeholder[text.Trim(marker.Content)] && startsWithDigit(next.Content)) {
		return
	}

	l.itemText = next
	next.itemOf = l
	l.HasContentAnchor = true
	c.anchor(l, next.X0, next.X0-marker.BBox.X1, marker.Size)
}

// leadingGlyph matches a marker glyph at the start of s. Secondary and
// placeholder glyphs must be followed by a space so hyphenated words,
// negative numbers and section signs are not taken for list items.
func (c *MarkerClassifier) leadingGlyph(s string) (string, bool) {
	r, ok := text.FirstRune(s)
	if !ok {
		return "", false
	}
	g := string(r)
	switch {
	case c.primary[g] && !c.placeholder[g]:
		return c.config.CanonicalBullet, true
	case c.primary[g]:
		if followedBySpace(s, g) && !startsWithDigit(strings.TrimPrefix(s, g)) {
			return c.config.CanonicalBullet, true
		}
	case c.sub[g]:
		if followedBySpace(s, g) {
			return g, true
		}
	}
	return "", false
}

// textAfter returns the content of the fragments after position i
func textAfter(l *Line, i int) string {
	var sb strings.Builder
	for _, f := range l.Fragments[i+1:] {
		sb.WriteString(f.Content)
	}
	return sb.String()
}

func startsWithDigit(s string) bool {
	r, ok := text.FirstRune(s)
	return ok && unicode.IsDigit(r)
}

func followedBySpace(s, prefix string) bool {
	rest := strings.TrimPrefix(s, prefix)
	return rest != "" && text.TrimLeft(rest) != rest
}

// anchor records the content anchor, pushing it right when the raw gap is
// under the floor
func (c *MarkerClassifier) anchor(l *Line, anchor, rawGap, size float64) {
	floor := c.config.MinGapRatio * size
	gap := rawGap
	if rawGap < floor {
		anchor += floor - rawGap
		gap = floor
	}
	l.ContentAnchor = anchor
	l.ContentGap = gap
}

// harmonize replaces near-median marker sizes with the median of their
// (font, indent) group
func (c *MarkerClassifier) harmonize(lines []*Line) {
	var xs []float64
	for _, l := range lines {
		if l.IsBulletStart {
			xs = append(xs, l.X0)
		}
	}
	if len(xs) == 0 {
		return
	}
	buckets := clusterValues(xs, c.config.IndentTolerance)

	type groupKey struct {
		font   string
		bucket int
	}
	groups := make(map[groupKey][]*Line)
	var keys []groupKey
	for _, l := range lines {
		m, ok := l.markerFragment()
		if !l.IsBulletStart || !ok {
			continue
		}
		k := groupKey{font: m.Font, bucket: clusterIndex(buckets, l.X0, c.config.IndentTolerance)}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], l)
	}

	for _, k := range keys {
		group := groups[k]
		sizes := make([]float64, len(group))
		for i, l := range group {
			sizes[i] = l.MarkerSize
		}
		med := median(sizes)
		if med <= 0 {
			continue
		}
		for _, l := range group {
			ratio, ok := model.SafeRatio(l.MarkerSize, med)
			if ok && ratio >= c.config.HarmonizeMin && ratio <= c.config.HarmonizeMax {
				l.MarkerSize = med
			}
		}
	}
}
