package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pagenorm/model"
)

// BlockType represents the semantic kind of a block
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockListItem
	BlockMetadata
)

// String returns a string representation of the block type
func (t BlockType) String() string {
	switch t {
	case BlockListItem:
		return "list-item"
	case BlockMetadata:
		return "metadata"
	default:
		return "paragraph"
	}
}

// Style is the representative typography of a block, taken from its first
// fragment
type Style struct {
	Font   string
	Size   float64
	Bold   bool
	Italic bool
	Color  model.Color
}

// Block is a paragraph, list item or metadata line group with resolved
// geometry
type Block struct {
	// ID is the stable block identifier, p<page>-b<index>
	ID string

	// Type is the block kind
	Type BlockType

	// Lines are the block's lines top to bottom
	Lines []*Line

	// Fragments are every fragment of the block in line order
	Fragments []model.Fragment

	// Styles is the style projection parallel to Fragments
	Styles []FragmentStyle

	// IndentX is the x of the first line (the marker column for list items)
	IndentX float64

	// TextX is the x of the text column; wrapped lines start here
	TextX float64

	// Level is the nesting depth of list items (0 = top level)
	Level int

	// Marker is the bullet glyph of list items
	Marker string

	// BBox is the union of the fragment boxes
	BBox model.Rect

	// Style is the typography of the first fragment
	Style Style

	// Link is the first link target on the first baseline
	Link string
}

// GetText returns the text content of this block, one row per baseline
func (b *Block) GetText() string {
	if b == nil || len(b.Lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, l := range b.Lines {
		if i > 0 && l.Baseline != b.Lines[i-1].Baseline {
			sb.WriteString("\n")
		}
		sb.WriteString(l.Content)
	}
	return sb.String()
}

// LineCount returns the number of lines in this block
func (b *Block) LineCount() int {
	if b == nil {
		return 0
	}
	return len(b.Lines)
}

// FragmentCount returns the number of fragments in this block
func (b *Block) FragmentCount() int {
	if b == nil {
		return 0
	}
	return len(b.Fragments)
}

// IsListItem reports whether the block is a list item
func (b *Block) IsListItem() bool {
	return b != nil && b.Type == BlockListItem
}

// BlockConfig holds configuration for block assembly
type BlockConfig struct {
	// GapFactor starts a new block when the baseline delta exceeds
	// GapFactor × leading (default: 1.6)
	GapFactor float64

	// FallbackGapFactor replaces GapFactor, relative to the line size, when
	// the page leading is undefined (default: 1.8)
	FallbackGapFactor float64

	// ContinuationTolerance is the x tolerance for continuation lines (default: 3px)
	ContinuationTolerance float64

	// SnapTolerance is the maximum distance a marker is moved onto a marker
	// anchor and item text onto a content anchor. Must stay below
	// NestingConfig.Tolerance (default: 2px)
	SnapTolerance float64

	// FallbackTextOffset places the text column relative to IndentX when
	// no content anchor was found (default: 15px)
	FallbackTextOffset float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		GapFactor:             1.6,
		FallbackGapFactor:     1.8,
		ContinuationTolerance: 3.0,
		SnapTolerance:         2.0,
		FallbackTextOffset:    15.0,
	}
}

// BlockAssembler groups lines into blocks and fixes their geometry
type BlockAssembler struct {
	config BlockConfig
}

// NewBlockAssembler creates a new assembler with default configuration
func NewBlockAssembler() *BlockAssembler {
	return &BlockAssembler{
		config: DefaultBlockConfig(),
	}
}

// NewBlockAssemblerWithConfig creates an assembler with custom configuration
func NewBlockAssemblerWithConfig(config BlockConfig) *BlockAssembler {
	return &BlockAssembler{
		config: config,
	}
}

// Assemble groups the lines of a page into blocks. stats supplies the page
// leading and columns the anchors that list geometry is snapped to. Either
// may be nil.
func (a *BlockAssembler) Assemble(lines []*Line, stats *PageStats, columns *ColumnLayout, page int) []*Block {
	if len(lines) == 0 {
		return nil
	}
	if stats == nil {
		stats = &PageStats{}
	}
	if columns == nil {
		columns = &ColumnLayout{}
	}

	ordered := make([]*Line, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Baseline != ordered[j].Baseline {
			return ordered[i].Baseline < ordered[j].Baseline
		}
		return ordered[i].X0 < ordered[j].X0
	})

	var blocks []*Block
	var open *Block
	var prev *Line
	for _, l := range ordered {
		if l.itemOf != nil && open != nil && open.Lines[0] == l.itemOf {
			open.Lines = append(open.Lines, l)
			prev = l
			continue
		}
		if open != nil && !a.startsBlock(open, prev, l, stats) && a.continues(open, l) {
			if open.Type == BlockListItem {
				l.shiftAll(open.TextX - l.X0)
			}
			open.Lines = append(open.Lines, l)
			prev = l
			continue
		}

		open = a.openBlock(l, columns)
		blocks = append(blocks, open)
		prev = l
	}

	for i, b := range blocks {
		b.ID = fmt.Sprintf("p%d-b%d", page, i)
		a.finalizeBlock(b)
	}

	return blocks
}

// startsBlock reports whether l must open a new block regardless of position
func (a *BlockAssembler) startsBlock(open *Block, prev, l *Line, stats *PageStats) bool {
	if l.IsBulletStart || l.IsMetadata || open.Type == BlockMetadata {
		return true
	}

	limit := a.config.FallbackGapFactor * l.Size
	if stats.LeadingDefined {
		limit = a.config.GapFactor * stats.Leading
	}
	return l.Baseline-prev.Baseline > limit
}

// continues reports whether l lines up with the open block
func (a *BlockAssembler) continues(open *Block, l *Line) bool {
	tol := a.config.ContinuationTolerance
	if math.Abs(l.X0-open.IndentX) <= tol {
		return true
	}
	return open.Type == BlockListItem && math.Abs(l.X0-open.TextX) <= tol
}

// openBlock starts a block at l, resolving list geometry
func (a *BlockAssembler) openBlock(l *Line, columns *ColumnLayout) *Block {
	b := &Block{
		Type:    BlockParagraph,
		Lines:   []*Line{l},
		IndentX: l.X0,
		TextX:   l.X0,
	}

	switch {
	case l.IsMetadata:
		b.Type = BlockMetadata
	case l.IsBulletStart:
		b.Type = BlockListItem
		b.Marker = l.Marker
		a.placeListItem(b, l, columns)
	}

	return b
}

// placeListItem lands the marker on IndentX and the content on TextX
func (a *BlockAssembler) placeListItem(b *Block, l *Line, columns *ColumnLayout) {
	indent, ok := nearestAnchor(columns.MarkerAnchors, l.X0, a.config.SnapTolerance)
	if !ok {
		indent = l.X0
	}
	dx := indent - l.X0
	l.shiftAll(dx)
	if l.itemText != nil {
		l.itemText.shiftAll(dx)
	}
	b.IndentX = indent

	textX := indent + a.config.FallbackTextOffset
	if l.HasContentAnchor {
		textX = l.ContentAnchor
		if snapped, ok := nearestAnchor(rightOf(columns.ContentAnchors, indent), l.ContentAnchor, a.config.SnapTolerance); ok {
			textX = snapped
		}
		if textX <= indent {
			textX = indent + a.config.FallbackTextOffset
		}
	}
	b.TextX = textX

	switch {
	case l.itemText != nil:
		l.itemText.shiftAll(textX - l.itemText.X0)
		l.ContentAnchor = textX
	case l.HasContentAnchor && l.contentIdx >= 0:
		content := l.arena[l.frags[l.contentIdx]]
		l.shift(l.contentIdx, textX-content.Origin.X)
		l.ContentAnchor = textX
	}
}

// finalizeBlock computes the aggregate fields from the final line geometry
func (a *BlockAssembler) finalizeBlock(b *Block) {
	b.Fragments = b.Fragments[:0]
	b.Styles = b.Styles[:0]
	for _, l := range b.Lines {
		for _, idx := range l.frags {
			l.arena[idx].BlockID = b.ID
		}
		l.refresh()
		b.Fragments = append(b.Fragments, l.Fragments...)
		b.Styles = append(b.Styles, l.Styles...)
	}

	if len(b.Fragments) > 0 {
		b.BBox = b.Fragments[0].BBox
		for _, f := range b.Fragments[1:] {
			b.BBox = b.BBox.Union(f.BBox)
		}
		first := b.Fragments[0]
		b.Style = Style{
			Font:   first.Font,
			Size:   first.Size,
			Bold:   first.Bold(),
			Italic: first.Italic(),
			Color:  first.Color,
		}
	}
	for _, l := range b.Lines {
		if l.Baseline != b.Lines[0].Baseline {
			break
		}
		if l.Link != "" {
			b.Link = l.Link
			break
		}
	}
}

// rightOf returns the anchors strictly greater than x
func rightOf(anchors []float64, x float64) []float64 {
	var out []float64
	for _, a := range anchors {
		if a > x {
			out = append(out, a)
		}
	}
	return out
}
