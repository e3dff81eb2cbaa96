package model

import "strings"

// StyleFlags is the span flag bitmask reported by the upstream extractor.
type StyleFlags uint32

const (
	// FlagSuperscript marks superscript runs
	FlagSuperscript StyleFlags = 1 << 0
	// FlagItalic marks italic runs
	FlagItalic StyleFlags = 1 << 1
	// FlagSerif marks serifed fonts
	FlagSerif StyleFlags = 1 << 2
	// FlagMonospace marks monospaced fonts
	FlagMonospace StyleFlags = 1 << 3
	// FlagBold marks bold runs
	FlagBold StyleFlags = 1 << 4
)

// Has reports whether every bit of f is set
func (s StyleFlags) Has(f StyleFlags) bool {
	return s&f == f
}

// Fragment represents a positioned run of text recovered from a page.
//
// Origin is the baseline start point; BBox is the glyph-run box. Geometry is
// only ever translated horizontally by the layout engine, never rescaled.
type Fragment struct {
	// ID is an optional stable identifier supplied by the extractor
	ID string

	// Content is the text of the run
	Content string

	// Origin is the baseline start point
	Origin Point

	// BBox is the bounding box of the run
	BBox Rect

	// Font is the font name as reported by the source
	Font string

	// Size is the font size in pixels
	Size float64

	// Flags is the style bitmask (bold = 16, italic = 2)
	Flags StyleFlags

	// Color is the fill color of the run
	Color Color

	// Link is the hyperlink target, empty when the run is not linked
	Link string

	// BlockID references the owning block after normalization
	BlockID string
}

// Bold reports whether the run is bold
func (f Fragment) Bold() bool {
	return f.Flags.Has(FlagBold)
}

// Italic reports whether the run is italic
func (f Fragment) Italic() bool {
	return f.Flags.Has(FlagItalic)
}

// IsBlank reports whether the fragment carries no visible text
func (f Fragment) IsBlank() bool {
	return strings.TrimSpace(f.Content) == ""
}

// Translate returns the fragment shifted horizontally by dx. Only the origin
// x and the bbox x-edges move.
func (f Fragment) Translate(dx float64) Fragment {
	f.Origin.X += dx
	f.BBox = f.BBox.Translate(dx, 0)
	return f
}

// FlagsFromFontName derives style flags from font-name keywords. Some
// producers only encode weight and slant in the font name.
func FlagsFromFontName(font string) StyleFlags {
	name := strings.ToLower(font)
	var flags StyleFlags
	for _, k := range []string{"bold", "black", "heavy", "700", "800", "900"} {
		if strings.Contains(name, k) {
			flags |= FlagBold
			break
		}
	}
	for _, k := range []string{"italic", "oblique"} {
		if strings.Contains(name, k) {
			flags |= FlagItalic
			break
		}
	}
	for _, k := range []string{"mono", "courier"} {
		if strings.Contains(name, k) {
			flags |= FlagMonospace
			break
		}
	}
	return flags
}
