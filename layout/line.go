package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pagenorm/model"
)

// FragmentStyle is the typographic projection of a fragment. It carries no
// box geometry so renderers can restyle text without touching layout.
type FragmentStyle struct {
	Text   string
	Font   string
	Size   float64
	Bold   bool
	Italic bool
	Origin model.Point
}

// Line represents fragments sharing a baseline and a single link target
type Line struct {
	// Fragments are the line's fragments sorted left to right
	Fragments []model.Fragment

	// Styles is the per-fragment style projection, parallel to Fragments
	Styles []FragmentStyle

	// Content is the concatenated fragment text
	Content string

	// Index is the line's position on the page (0-based, top to bottom)
	Index int

	// Baseline is the smallest origin y of the baseline cluster
	Baseline float64

	// X0 is the leftmost fragment origin x
	X0 float64

	// X1 is the rightmost fragment box edge
	X1 float64

	// Height is the tallest fragment box height
	Height float64

	// Size is the largest font size on the line
	Size float64

	// Link is the hyperlink target shared by every fragment, "" for none
	Link string

	// IsBulletStart is set by the marker classifier when the line opens a list item
	IsBulletStart bool

	// Marker is the bullet glyph, normalized for primary glyphs
	Marker string

	// HasContentAnchor reports whether ContentAnchor was computed
	HasContentAnchor bool

	// ContentAnchor is the x where the item text starts
	ContentAnchor float64

	// ContentGap is the floored distance between marker and text
	ContentGap float64

	// MarkerSize is the (harmonized) font size of the marker
	MarkerSize float64

	// IsMetadata is set by the column snapper for right-aligned lines
	IsMetadata bool

	arena      []model.Fragment
	frags      []int
	markerIdx  int
	contentIdx int

	// itemText is the line holding the item text of a lone marker, split
	// off by a link change; itemOf points back from it
	itemText *Line
	itemOf   *Line
}

// newLine creates a line over arena indices already sorted by x
func newLine(arena []model.Fragment, frags []int, baseline float64) *Line {
	l := &Line{
		Baseline:   baseline,
		arena:      arena,
		frags:      frags,
		markerIdx:  -1,
		contentIdx: -1,
	}
	l.refresh()
	return l
}

// refresh recomputes the derived fields from the arena
func (l *Line) refresh() {
	l.Fragments = make([]model.Fragment, len(l.frags))
	l.Styles = make([]FragmentStyle, len(l.frags))

	var sb strings.Builder
	l.X0 = math.Inf(1)
	l.X1 = math.Inf(-1)
	l.Height = 0
	l.Size = 0
	for i, idx := range l.frags {
		f := l.arena[idx]
		l.Fragments[i] = f
		l.Styles[i] = FragmentStyle{
			Text:   f.Content,
			Font:   f.Font,
			Size:   f.Size,
			Bold:   f.Bold(),
			Italic: f.Italic(),
			Origin: f.Origin,
		}
		sb.WriteString(f.Content)
		l.X0 = math.Min(l.X0, f.Origin.X)
		l.X1 = math.Max(l.X1, f.BBox.X1)
		l.Height = math.Max(l.Height, f.BBox.Height())
		l.Size = math.Max(l.Size, f.Size)
	}
	if len(l.frags) > 0 {
		l.Link = l.arena[l.frags[0]].Link
	} else {
		l.X0, l.X1 = 0, 0
	}
	l.Content = sb.String()
}

// shift translates fragments from position `from` onward by dx
func (l *Line) shift(from int, dx float64) {
	if dx == 0 || from < 0 {
		return
	}
	for _, idx := range l.frags[from:] {
		l.arena[idx] = l.arena[idx].Translate(dx)
	}
	anchorPos := l.contentIdx
	if anchorPos < 0 {
		anchorPos = l.markerIdx
	}
	if l.HasContentAnchor && from <= anchorPos {
		l.ContentAnchor += dx
	}
	l.refresh()
}

// shiftAll translates the whole line by dx
func (l *Line) shiftAll(dx float64) {
	l.shift(0, dx)
}

// BBox returns the union of the fragment boxes
func (l *Line) BBox() model.Rect {
	if len(l.Fragments) == 0 {
		return model.Rect{}
	}
	r := l.Fragments[0].BBox
	for _, f := range l.Fragments[1:] {
		r = r.Union(f.BBox)
	}
	return r
}

// markerFragment returns the marker fragment for bullet lines
func (l *Line) markerFragment() (model.Fragment, bool) {
	if l.markerIdx < 0 || l.markerIdx >= len(l.frags) {
		return model.Fragment{}, false
	}
	return l.arena[l.frags[l.markerIdx]], true
}

// LineConfig holds configuration for line aggregation
type LineConfig struct {
	// BaselineTolerance is the maximum y distance between consecutive
	// fragments of one baseline cluster (default: 4.5px)
	BaselineTolerance float64

	// SplitGap splits a baseline cluster into separate lines when the
	// horizontal gap between neighbours exceeds it (default: 50px)
	SplitGap float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 4.5,
		SplitGap:          50.0,
	}
}

// LineAggregator groups fragments into lines
type LineAggregator struct {
	config LineConfig
}

// NewLineAggregator creates a new aggregator with default configuration
func NewLineAggregator() *LineAggregator {
	return &LineAggregator{
		config: DefaultLineConfig(),
	}
}

// NewLineAggregatorWithConfig creates an aggregator with custom configuration
func NewLineAggregatorWithConfig(config LineConfig) *LineAggregator {
	return &LineAggregator{
		config: config,
	}
}

// Aggregate groups the arena fragments into lines. Lines keep a reference to
// the arena; later phases translate fragments through them. The result is
// sorted by baseline, then X0, and does not depend on input order beyond
// exact ties.
func (a *LineAggregator) Aggregate(arena []model.Fragment) []*Line {
	if len(arena) == 0 {
		return nil
	}

	order := make([]int, len(arena))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		fi, fj := arena[order[i]], arena[order[j]]
		if fi.Origin.Y != fj.Origin.Y {
			return fi.Origin.Y < fj.Origin.Y
		}
		return fi.Origin.X < fj.Origin.X
	})

	var lines []*Line
	start := 0
	for i := 1; i <= len(order); i++ {
		if i < len(order) && arena[order[i]].Origin.Y-arena[order[i-1]].Origin.Y < a.config.BaselineTolerance {
			continue
		}
		cluster := order[start:i]
		lines = append(lines, a.splitCluster(arena, cluster)...)
		start = i
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Baseline != lines[j].Baseline {
			return lines[i].Baseline < lines[j].Baseline
		}
		return lines[i].X0 < lines[j].X0
	})
	for i, l := range lines {
		l.Index = i
	}

	return lines
}

// splitCluster orders one baseline cluster by x and splits it on link
// changes and wide gaps
func (a *LineAggregator) splitCluster(arena []model.Fragment, cluster []int) []*Line {
	baseline := arena[cluster[0]].Origin.Y

	byX := make([]int, len(cluster))
	copy(byX, cluster)
	sort.SliceStable(byX, func(i, j int) bool {
		xi, xj := arena[byX[i]].Origin.X, arena[byX[j]].Origin.X
		if xi != xj {
			return xi < xj
		}
		return byX[i] < byX[j]
	})

	var lines []*Line
	current := []int{byX[0]}
	for _, idx := range byX[1:] {
		prev := arena[current[len(current)-1]]
		next := arena[idx]
		if next.Link != prev.Link || next.BBox.X0-prev.BBox.X1 > a.config.SplitGap {
			lines = append(lines, newLine(arena, current, baseline))
			current = nil
		}
		current = append(current, idx)
	}
	lines = append(lines, newLine(arena, current, baseline))

	return lines
}
