package layout

import (
	"math"
)

// ColumnLayout describes the column anchors found on a page and the snapping
// applied to its lines
type ColumnLayout struct {
	// LeftAnchors are the left column positions (cluster means, ascending)
	LeftAnchors []float64

	// RightAnchors are the right-margin positions of metadata lines
	RightAnchors []float64

	// ContentAnchors are the positions where item and body text starts.
	// The block assembler snaps list text columns onto them.
	ContentAnchors []float64

	// MarkerAnchors cluster the marker positions of bullet lines within the
	// snap tolerance. List items take their IndentX from them.
	MarkerAnchors []float64

	// Snapped counts lines moved onto a left anchor
	Snapped int

	// Metadata counts lines snapped onto a right anchor
	Metadata int

	// PageWidth is the width the layout was computed for
	PageWidth float64

	// Config is the configuration used for snapping
	Config SnapConfig
}

// AnchorCount returns the number of left and right anchors
func (l *ColumnLayout) AnchorCount() int {
	return len(l.LeftAnchors) + len(l.RightAnchors)
}

// HasRightMargin reports whether right-aligned metadata was found
func (l *ColumnLayout) HasRightMargin() bool {
	return len(l.RightAnchors) > 0
}

// SnapConfig holds configuration for column snapping
type SnapConfig struct {
	// ClusterTolerance is the maximum gap between consecutive x values of
	// one column cluster (default: 8px)
	ClusterTolerance float64

	// SnapTolerance is the maximum distance a line is moved onto a left
	// anchor (default: 2px)
	SnapTolerance float64

	// RightSnapTolerance is the maximum distance a metadata line is moved
	// onto a right anchor (default: 3px)
	RightSnapTolerance float64

	// CandidateStartFraction is the minimum X0, as a fraction of page width,
	// of a right-aligned candidate (default: 0.5)
	CandidateStartFraction float64

	// RightEdgeFraction is the minimum X1, as a fraction of page width, of
	// a right-aligned candidate (default: 0.6)
	RightEdgeFraction float64

	// RightBand keeps right anchors within this distance of the rightmost
	// line edge on the page (default: 40px)
	RightBand float64

	// ContentTolerance clusters text start positions (default: 3px)
	ContentTolerance float64
}

// DefaultSnapConfig returns sensible default configuration
func DefaultSnapConfig() SnapConfig {
	return SnapConfig{
		ClusterTolerance:       8.0,
		SnapTolerance:          2.0,
		RightSnapTolerance:     3.0,
		CandidateStartFraction: 0.5,
		RightEdgeFraction:      0.6,
		RightBand:              40.0,
		ContentTolerance:       3.0,
	}
}

// ColumnSnapper aligns lines onto shared column anchors
type ColumnSnapper struct {
	config SnapConfig
}

// NewColumnSnapper creates a new snapper with default configuration
func NewColumnSnapper() *ColumnSnapper {
	return &ColumnSnapper{
		config: DefaultSnapConfig(),
	}
}

// NewColumnSnapperWithConfig creates a snapper with custom configuration
func NewColumnSnapperWithConfig(config SnapConfig) *ColumnSnapper {
	return &ColumnSnapper{
		config: config,
	}
}

// Snap clusters line edges into anchors, flags right-aligned metadata and
// moves near-aligned lines exactly onto their anchor. Bullet-start lines and
// the item text lines attached to them are left where they are; the block
// assembler places them.
func (s *ColumnSnapper) Snap(lines []*Line, pageWidth float64) *ColumnLayout {
	return s.SnapWithStats(lines, pageWidth, nil)
}

// SnapWithStats is Snap with the page histogram available. A right-aligned
// cluster outside RightBand is still kept when its edge recurs in
// stats.RightAnchors.
func (s *ColumnSnapper) SnapWithStats(lines []*Line, pageWidth float64, stats *PageStats) *ColumnLayout {
	layout := &ColumnLayout{
		PageWidth: pageWidth,
		Config:    s.config,
	}
	if len(lines) == 0 {
		return layout
	}
	if stats == nil {
		stats = &PageStats{}
	}

	var x0s, markers []float64
	for _, l := range lines {
		switch {
		case l.itemOf != nil:
		case l.IsBulletStart:
			markers = append(markers, l.X0)
			x0s = append(x0s, l.X0)
		default:
			x0s = append(x0s, l.X0)
		}
	}
	layout.LeftAnchors = anchorsOf(clusterValues(x0s, s.config.ClusterTolerance))
	layout.MarkerAnchors = anchorsOf(clusterValues(markers, s.config.SnapTolerance))
	layout.RightAnchors = s.rightAnchors(lines, pageWidth, stats.RightAnchors)

	for _, l := range lines {
		if l.IsBulletStart || l.itemOf != nil {
			continue
		}
		if s.isCandidate(l, pageWidth) {
			if anchor, ok := nearestAnchor(layout.RightAnchors, l.X1, s.config.RightSnapTolerance); ok {
				l.IsMetadata = true
				l.shiftAll(anchor - l.X1)
				layout.Metadata++
				continue
			}
		}
		if anchor, ok := nearestAnchor(layout.LeftAnchors, l.X0, s.config.SnapTolerance); ok {
			if anchor != l.X0 {
				l.shiftAll(anchor - l.X0)
				layout.Snapped++
			}
		}
	}

	layout.ContentAnchors = s.contentAnchors(lines)

	return layout
}

func (s *ColumnSnapper) isCandidate(l *Line, pageWidth float64) bool {
	return !l.IsBulletStart && l.itemOf == nil &&
		l.X0 >= s.config.CandidateStartFraction*pageWidth &&
		l.X1 >= s.config.RightEdgeFraction*pageWidth
}

// rightAnchors clusters candidate right edges and keeps the clusters near
// the page's rightmost text edge, or confirmed by a recurring edge
func (s *ColumnSnapper) rightAnchors(lines []*Line, pageWidth float64, recurring []float64) []float64 {
	maxX1 := math.Inf(-1)
	var x1s []float64
	for _, l := range lines {
		maxX1 = math.Max(maxX1, l.X1)
		if s.isCandidate(l, pageWidth) {
			x1s = append(x1s, l.X1)
		}
	}

	var anchors []float64
	for _, c := range clusterValues(x1s, s.config.ClusterTolerance) {
		if maxX1-c.Anchor <= s.config.RightBand {
			anchors = append(anchors, c.Anchor)
			continue
		}
		if _, ok := nearestAnchor(recurring, c.Anchor, s.config.RightSnapTolerance); ok {
			anchors = append(anchors, c.Anchor)
		}
	}
	return anchors
}

// contentAnchors clusters the text start positions of list items together
// with body line starts
func (s *ColumnSnapper) contentAnchors(lines []*Line) []float64 {
	var xs []float64
	for _, l := range lines {
		switch {
		case l.IsBulletStart && l.HasContentAnchor:
			xs = append(xs, l.ContentAnchor)
		case !l.IsBulletStart && !l.IsMetadata && l.itemOf == nil:
			xs = append(xs, l.X0)
		}
	}
	return anchorsOf(clusterValues(xs, s.config.ContentTolerance))
}
