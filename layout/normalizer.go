package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/pagenorm/model"
)

// ErrInvariant is returned by Result.Validate when the output breaks a
// structural guarantee
var ErrInvariant = errors.New("layout: invariant violated")

// NormalizerConfig holds configuration for the full normalization pipeline.
// Each phase has its own sub-configuration.
type NormalizerConfig struct {
	// Statistics collection configuration
	StatsConfig StatsConfig

	// Line aggregation configuration
	LineConfig LineConfig

	// Marker classification configuration
	MarkerConfig MarkerConfig

	// Column snapping configuration
	SnapConfig SnapConfig

	// Block assembly configuration
	BlockConfig BlockConfig

	// Nesting classification configuration
	NestingConfig NestingConfig

	// DefaultFontSize replaces missing or invalid fragment sizes (default: 12)
	DefaultFontSize float64

	// DefaultFont replaces empty font names (default: "Helvetica")
	DefaultFont string
}

// DefaultNormalizerConfig returns a configuration with the default settings
// of every phase.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		StatsConfig:     DefaultStatsConfig(),
		LineConfig:      DefaultLineConfig(),
		MarkerConfig:    DefaultMarkerConfig(),
		SnapConfig:      DefaultSnapConfig(),
		BlockConfig:     DefaultBlockConfig(),
		NestingConfig:   DefaultNestingConfig(),
		DefaultFontSize: 12.0,
		DefaultFont:     "Helvetica",
	}
}

// Stats summarizes what normalization found on a page
type Stats struct {
	// Leading is the dominant baseline distance, 0 when undefined
	Leading float64

	// LeadingDefined reports whether Leading was measured
	LeadingDefined bool

	// AnchorCount is the number of left and right column anchors
	AnchorCount int

	// LeftAnchors and RightAnchors are the column anchors lines were snapped to
	LeftAnchors  []float64
	RightAnchors []float64

	// RecurringLeft and RecurringRight are the rounded fragment edges seen at
	// least StatsConfig.MinAnchorCount times, before any grouping
	RecurringLeft  []float64
	RecurringRight []float64

	// Fragments is the number of input fragments
	Fragments int

	// Lines is the number of lines built
	Lines int

	// DefaultedFragments counts fragments whose size or font was defaulted
	DefaultedFragments int
}

// Result is the normalized structure of one page
type Result struct {
	// Page is the 0-based page index
	Page int

	// Width and Height are the page dimensions
	Width  float64
	Height float64

	// Blocks are the page blocks top to bottom
	Blocks []*Block

	// BgItems are the page's non-text items, unchanged
	BgItems []model.BgItem

	// Stats summarizes the page geometry
	Stats Stats

	// Warnings are non-fatal observations about the input
	Warnings []string
}

// Fragments returns every output fragment in block order
func (r *Result) Fragments() []model.Fragment {
	if r == nil {
		return nil
	}
	var out []model.Fragment
	for _, b := range r.Blocks {
		out = append(out, b.Fragments...)
	}
	return out
}

// BlockByID returns the block with the given ID or nil
func (r *Result) BlockByID(id string) *Block {
	if r == nil {
		return nil
	}
	for _, b := range r.Blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ListItems returns the list-item blocks
func (r *Result) ListItems() []*Block {
	var out []*Block
	for _, b := range r.Blocks {
		if b.IsListItem() {
			out = append(out, b)
		}
	}
	return out
}

// Validate checks the structural guarantees of the result: every fragment
// is placed once and references its block, block boxes contain their
// fragments, list levels are dense and list text never starts left of the
// marker.
func (r *Result) Validate() error {
	if r == nil {
		return nil
	}

	count := 0
	seen := make(map[string]bool)
	levels := make(map[int]bool)
	for _, b := range r.Blocks {
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate block id %s", ErrInvariant, b.ID)
		}
		seen[b.ID] = true

		lineFrags := 0
		for _, l := range b.Lines {
			lineFrags += len(l.Fragments)
		}
		if lineFrags != len(b.Fragments) {
			return fmt.Errorf("%w: block %s has %d line fragments but %d fragments",
				ErrInvariant, b.ID, lineFrags, len(b.Fragments))
		}

		for _, f := range b.Fragments {
			count++
			if f.BlockID != b.ID {
				return fmt.Errorf("%w: fragment %q references %q, not %s", ErrInvariant, f.ID, f.BlockID, b.ID)
			}
			if !b.BBox.ContainsRect(f.BBox) {
				return fmt.Errorf("%w: block %s does not contain fragment %q", ErrInvariant, b.ID, f.ID)
			}
		}

		if b.IsListItem() {
			if b.TextX < b.IndentX {
				return fmt.Errorf("%w: block %s text x %.2f left of indent %.2f", ErrInvariant, b.ID, b.TextX, b.IndentX)
			}
			levels[b.Level] = true
		}
	}

	if count != r.Stats.Fragments {
		return fmt.Errorf("%w: %d fragments in, %d out", ErrInvariant, r.Stats.Fragments, count)
	}
	for i := 0; i < len(levels); i++ {
		if !levels[i] {
			return fmt.Errorf("%w: list levels are not dense, missing %d", ErrInvariant, i)
		}
	}

	return nil
}

// Normalizer runs the full layout normalization pipeline on a page
type Normalizer struct {
	config NormalizerConfig

	stats   *StatsCollector
	lines   *LineAggregator
	markers *MarkerClassifier
	snapper *ColumnSnapper
	blocks  *BlockAssembler
	nesting *NestingClassifier
}

// NewNormalizer creates a new normalizer with default configuration
func NewNormalizer() *Normalizer {
	return NewNormalizerWithConfig(DefaultNormalizerConfig())
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config NormalizerConfig) *Normalizer {
	return &Normalizer{
		config:  config,
		stats:   NewStatsCollectorWithConfig(config.StatsConfig),
		lines:   NewLineAggregatorWithConfig(config.LineConfig),
		markers: NewMarkerClassifierWithConfig(config.MarkerConfig),
		snapper: NewColumnSnapperWithConfig(config.SnapConfig),
		blocks:  NewBlockAssemblerWithConfig(config.BlockConfig),
		nesting: NewNestingClassifierWithConfig(config.NestingConfig),
	}
}

// Config returns the normalizer configuration
func (n *Normalizer) Config() NormalizerConfig {
	return n.config
}

// Normalize reconstructs paragraphs, list items and metadata lines from the
// page fragments. The page is not modified; the result carries new fragment
// values. A Normalizer holds no per-page state and may be shared between
// goroutines.
func (n *Normalizer) Normalize(page model.Page) *Result {
	result := &Result{
		Page:    page.Index,
		Width:   page.Width,
		Height:  page.Height,
		BgItems: append([]model.BgItem(nil), page.BgItems...),
	}

	arena := make([]model.Fragment, len(page.Fragments))
	copy(arena, page.Fragments)
	for i := range arena {
		if n.applyDefaults(&arena[i]) {
			result.Stats.DefaultedFragments++
		}
		arena[i].BlockID = ""
	}
	result.Stats.Fragments = len(arena)
	if result.Stats.DefaultedFragments > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("defaulted size or font on %d fragments", result.Stats.DefaultedFragments))
	}
	if len(arena) == 0 {
		return result
	}

	// Phase 1: page statistics
	stats := n.stats.Collect(arena, page.Width)
	result.Stats.Leading = stats.Leading
	result.Stats.LeadingDefined = stats.LeadingDefined
	result.Stats.RecurringLeft = stats.LeftAnchors
	result.Stats.RecurringRight = stats.RightAnchors

	// Phase 2: lines
	lines := n.lines.Aggregate(arena)
	result.Stats.Lines = len(lines)
	if !stats.LeadingDefined && len(lines) > 1 {
		result.Warnings = append(result.Warnings, "leading undefined, block gaps use line size")
	}

	// Phase 3: bullet markers
	n.markers.Classify(lines)

	// Phase 4: column anchors
	columns := n.snapper.SnapWithStats(lines, page.Width, stats)
	result.Stats.LeftAnchors = columns.LeftAnchors
	result.Stats.RightAnchors = columns.RightAnchors
	result.Stats.AnchorCount = columns.AnchorCount()

	// Phase 5: blocks
	result.Blocks = n.blocks.Assemble(lines, stats, columns, page.Index)

	// Phase 6: list levels
	n.nesting.Classify(result.Blocks)

	return result
}

// applyDefaults fills missing size and font, reporting whether it did
func (n *Normalizer) applyDefaults(f *model.Fragment) bool {
	defaulted := false
	if f.Size <= 0 || math.IsNaN(f.Size) || math.IsInf(f.Size, 0) {
		f.Size = n.config.DefaultFontSize
		defaulted = true
	}
	if f.Font == "" {
		f.Font = n.config.DefaultFont
		defaulted = true
	}
	return defaulted
}
