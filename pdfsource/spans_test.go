package pdfsource

import (
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagenorm/model"
)

// glyphs lays out s as consecutive glyphs of width w starting at x
func glyphs(s string, font string, size, x, y, w float64) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		out = append(out, pdf.Text{Font: font, FontSize: size, X: x, Y: y, W: w, S: string(r)})
		x += w
	}
	return out
}

func spanContents(spans []*span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.content()
	}
	return out
}

func TestBuildSpans(t *testing.T) {
	tests := []struct {
		name  string
		texts []pdf.Text
		want  []string
	}{
		{
			name:  "one word",
			texts: glyphs("Hello", "Helvetica", 12, 72, 700, 6),
			want:  []string{"Hello"},
		},
		{
			name: "implicit word space",
			texts: append(glyphs("Hello", "Helvetica", 12, 72, 700, 6),
				glyphs("World", "Helvetica", 12, 108, 700, 6)...),
			want: []string{"Hello World"},
		},
		{
			name: "wide gap breaks the run",
			texts: append(glyphs("•", "Symbol", 12, 50, 700, 6),
				glyphs("Item", "Symbol", 12, 80, 700, 6)...),
			want: []string{"•", "Item"},
		},
		{
			name: "font change breaks the run",
			texts: append(glyphs("Bold", "Helvetica-Bold", 12, 72, 700, 6),
				glyphs("Plain", "Helvetica", 12, 96, 700, 6)...),
			want: []string{"Bold", "Plain"},
		},
		{
			name: "baseline change breaks the run",
			texts: append(glyphs("One", "Helvetica", 12, 72, 700, 6),
				glyphs("Two", "Helvetica", 12, 90, 686, 6)...),
			want: []string{"One", "Two"},
		},
		{
			name:  "empty glyphs skipped",
			texts: []pdf.Text{{Font: "Helvetica", FontSize: 12, X: 72, Y: 700, W: 0, S: ""}},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spanContents(buildSpans(tt.texts, DefaultConfig()))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Span %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestBuildSpans_Extent(t *testing.T) {
	spans := buildSpans(glyphs("abc", "Helvetica", 10, 100, 500, 5), DefaultConfig())
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.x0 != 100 || s.x1 != 115 || s.baseline != 500 || s.size != 10 {
		t.Errorf("Unexpected span extent %+v", s)
	}
}

func TestLinkIndex(t *testing.T) {
	idx := newLinkIndex([]model.BgItem{
		{ID: "l0", Kind: model.ItemLink, URI: "https://outer.example", BBox: model.Rect{X0: 0, Y0: 0, X1: 200, Y1: 100}},
		{ID: "l1", Kind: model.ItemLink, URI: "https://inner.example", BBox: model.Rect{X0: 10, Y0: 10, X1: 50, Y1: 30}},
	})

	tests := []struct {
		p    model.Point
		want string
	}{
		{model.Point{X: 20, Y: 20}, "https://inner.example"},
		{model.Point{X: 150, Y: 50}, "https://outer.example"},
		{model.Point{X: 300, Y: 50}, ""},
	}

	for _, tt := range tests {
		if got := idx.lookup(tt.p); got != tt.want {
			t.Errorf("lookup(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
	if idx.len() != 2 {
		t.Errorf("Expected 2 indexed links, got %d", idx.len())
	}

	var empty *linkIndex
	if empty.lookup(model.Point{}) != "" || empty.len() != 0 {
		t.Error("Nil index should find nothing")
	}
}
