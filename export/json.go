package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/model"
)

// ExportedPage is the output contract of one normalized page
type ExportedPage struct {
	Page     int             `json:"page"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Blocks   []ExportedBlock `json:"blocks"`
	BgItems  []ExportedItem  `json:"bg_items"`
	Stats    ExportedStats   `json:"stats"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ExportedStats holds the page statistics
type ExportedStats struct {
	Leading     float64 `json:"leading"`
	AnchorCount int     `json:"anchor_count"`
}

// ExportedStyle is the representative typography of a block
type ExportedStyle struct {
	Font   string  `json:"font"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"is_bold"`
	Italic bool    `json:"is_italic"`
	Color  string  `json:"color"`
}

// ExportedBlock is one block with resolved geometry
type ExportedBlock struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	IndentX float64        `json:"indent_x"`
	TextX   float64        `json:"text_x"`
	Level   int            `json:"level"`
	Marker  string         `json:"marker,omitempty"`
	BBox    [4]float64     `json:"bbox"`
	Style   ExportedStyle  `json:"style"`
	Link    string         `json:"link,omitempty"`
	Lines   []ExportedLine `json:"lines"`
}

// ExportedLine is one line of a block
type ExportedLine struct {
	Text      string             `json:"text"`
	Baseline  float64            `json:"baseline"`
	X0        float64            `json:"x0"`
	X1        float64            `json:"x1"`
	Link      string             `json:"link,omitempty"`
	Fragments []ExportedFragment `json:"fragments,omitempty"`
}

// ExportedFragment is one text run with its block back-reference
type ExportedFragment struct {
	ID      string     `json:"id,omitempty"`
	Text    string     `json:"text"`
	Origin  [2]float64 `json:"origin"`
	BBox    [4]float64 `json:"bbox"`
	Font    string     `json:"font"`
	Size    float64    `json:"size"`
	Flags   uint32     `json:"flags"`
	Color   string     `json:"color"`
	Link    string     `json:"uri,omitempty"`
	BlockID string     `json:"block_id"`
}

// ExportedItem is a background item passed through normalization
type ExportedItem struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	BBox        [4]float64        `json:"bbox"`
	URI         string            `json:"uri,omitempty"`
	Data        []byte            `json:"data,omitempty"`
	Segments    []ExportedSegment `json:"items,omitempty"`
	Fill        string            `json:"fill,omitempty"`
	Stroke      string            `json:"stroke,omitempty"`
	StrokeWidth float64           `json:"width,omitempty"`
}

// ExportedSegment is one drawing operation of a path item
type ExportedSegment struct {
	Op     string       `json:"op"`
	Points [][2]float64 `json:"points"`
}

// Page converts a normalization result to its exported form
func (e *Exporter) Page(r *layout.Result) ExportedPage {
	page := ExportedPage{
		Page:     r.Page,
		Width:    e.round(r.Width),
		Height:   e.round(r.Height),
		Blocks:   make([]ExportedBlock, 0, len(r.Blocks)),
		BgItems:  make([]ExportedItem, 0, len(r.BgItems)),
		Warnings: r.Warnings,
		Stats: ExportedStats{
			Leading:     e.round(r.Stats.Leading),
			AnchorCount: r.Stats.AnchorCount,
		},
	}

	for _, b := range r.Blocks {
		page.Blocks = append(page.Blocks, e.block(b))
	}
	for _, item := range r.BgItems {
		page.BgItems = append(page.BgItems, e.item(item))
	}
	return page
}

func (e *Exporter) block(b *layout.Block) ExportedBlock {
	out := ExportedBlock{
		ID:      b.ID,
		Type:    b.Type.String(),
		Text:    b.GetText(),
		IndentX: e.round(b.IndentX),
		TextX:   e.round(b.TextX),
		Level:   b.Level,
		Marker:  b.Marker,
		BBox:    e.rect(b.BBox),
		Style: ExportedStyle{
			Font:   b.Style.Font,
			Size:   e.round(b.Style.Size),
			Bold:   b.Style.Bold,
			Italic: b.Style.Italic,
			Color:  b.Style.Color.Hex(),
		},
		Link:  b.Link,
		Lines: make([]ExportedLine, 0, len(b.Lines)),
	}

	for _, l := range b.Lines {
		line := ExportedLine{
			Text:     l.Content,
			Baseline: e.round(l.Baseline),
			X0:       e.round(l.X0),
			X1:       e.round(l.X1),
			Link:     l.Link,
		}
		if e.config.IncludeFragments {
			for _, f := range l.Fragments {
				line.Fragments = append(line.Fragments, e.fragment(f))
			}
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

func (e *Exporter) fragment(f model.Fragment) ExportedFragment {
	return ExportedFragment{
		ID:      f.ID,
		Text:    f.Content,
		Origin:  [2]float64{e.round(f.Origin.X), e.round(f.Origin.Y)},
		BBox:    e.rect(f.BBox),
		Font:    f.Font,
		Size:    e.round(f.Size),
		Flags:   uint32(f.Flags),
		Color:   f.Color.Hex(),
		Link:    f.Link,
		BlockID: f.BlockID,
	}
}

func (e *Exporter) item(item model.BgItem) ExportedItem {
	out := ExportedItem{
		ID:          item.ID,
		Type:        item.Kind.String(),
		BBox:        e.rect(item.BBox),
		URI:         item.URI,
		Data:        item.Data,
		StrokeWidth: e.round(item.StrokeWidth),
	}
	if item.Fill != nil {
		out.Fill = item.Fill.Hex()
	}
	if item.Stroke != nil {
		out.Stroke = item.Stroke.Hex()
	}
	for _, s := range item.Segments {
		seg := ExportedSegment{Op: s.Op, Points: make([][2]float64, 0, len(s.Points))}
		for _, p := range s.Points {
			seg.Points = append(seg.Points, [2]float64{e.round(p.X), e.round(p.Y)})
		}
		out.Segments = append(out.Segments, seg)
	}
	return out
}

func (e *Exporter) rect(r model.Rect) [4]float64 {
	return [4]float64{e.round(r.X0), e.round(r.Y0), e.round(r.X1), e.round(r.Y1)}
}

// exportJSON exports pages as a JSON array
func (e *Exporter) exportJSON(results []*layout.Result, w io.Writer) error {
	pages := make([]ExportedPage, 0, len(results))
	for _, r := range results {
		pages = append(pages, e.Page(r))
	}

	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(pages)
}

// exportJSONL exports one page object per line
func (e *Exporter) exportJSONL(results []*layout.Result, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}

	for i, r := range results {
		if err := encoder.Encode(e.Page(r)); err != nil {
			return fmt.Errorf("encoding page %d: %w", i, err)
		}
	}
	return nil
}
