package layout

import (
	"sort"

	"github.com/tsawler/pagenorm/model"
)

// PageStats holds the geometric statistics gathered from a page before any
// grouping takes place.
type PageStats struct {
	// LeftAnchors are the recurring fragment origin x values, ascending
	LeftAnchors []float64

	// RightAnchors are the recurring right edges in the right part of the page
	RightAnchors []float64

	// Leading is the dominant baseline-to-baseline distance
	Leading float64

	// LeadingDefined is false when no baseline delta fell inside the window
	LeadingDefined bool
}

// StatsConfig holds configuration for statistics collection
type StatsConfig struct {
	// AnchorPrecision is the rounding step for x positions (default: 1px)
	AnchorPrecision float64

	// MinAnchorCount is the minimum number of occurrences for an anchor (default: 2)
	MinAnchorCount int

	// RightEdgeFraction restricts right anchors to edges beyond this
	// fraction of the page width (default: 0.6)
	RightEdgeFraction float64

	// LeadingPrecision is the rounding step for baselines (default: 0.5px)
	LeadingPrecision float64

	// MinLeading and MaxLeading bound the deltas considered as leading
	// (default: 5px and 30px)
	MinLeading float64
	MaxLeading float64
}

// DefaultStatsConfig returns sensible default configuration
func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		AnchorPrecision:   1.0,
		MinAnchorCount:    2,
		RightEdgeFraction: 0.6,
		LeadingPrecision:  0.5,
		MinLeading:        5.0,
		MaxLeading:        30.0,
	}
}

// StatsCollector computes page-level geometric statistics
type StatsCollector struct {
	config StatsConfig
}

// NewStatsCollector creates a new collector with default configuration
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		config: DefaultStatsConfig(),
	}
}

// NewStatsCollectorWithConfig creates a collector with custom configuration
func NewStatsCollectorWithConfig(config StatsConfig) *StatsCollector {
	return &StatsCollector{
		config: config,
	}
}

// Collect computes left anchors, right anchors and leading for the given
// fragments. It does not modify its input.
func (c *StatsCollector) Collect(fragments []model.Fragment, pageWidth float64) *PageStats {
	stats := &PageStats{}
	if len(fragments) == 0 {
		return stats
	}

	left := make(histogram)
	right := make(histogram)
	rightLimit := c.config.RightEdgeFraction * pageWidth
	for _, f := range fragments {
		left.add(roundTo(f.Origin.X, c.config.AnchorPrecision))
		if f.BBox.X1 > rightLimit {
			right.add(roundTo(f.BBox.X1, c.config.AnchorPrecision))
		}
	}
	stats.LeftAnchors = left.atLeast(c.config.MinAnchorCount)
	stats.RightAnchors = right.atLeast(c.config.MinAnchorCount)

	stats.Leading, stats.LeadingDefined = c.leading(fragments)

	return stats
}

// leading finds the most frequent delta between distinct rounded baselines
func (c *StatsCollector) leading(fragments []model.Fragment) (float64, bool) {
	seen := make(map[float64]bool)
	var baselines []float64
	for _, f := range fragments {
		y := roundTo(f.Origin.Y, c.config.LeadingPrecision)
		if !seen[y] {
			seen[y] = true
			baselines = append(baselines, y)
		}
	}
	sort.Float64s(baselines)

	deltas := make(histogram)
	for i := 1; i < len(baselines); i++ {
		d := roundTo(baselines[i]-baselines[i-1], c.config.LeadingPrecision)
		if d >= c.config.MinLeading && d <= c.config.MaxLeading {
			deltas.add(d)
		}
	}

	return deltas.mode()
}
