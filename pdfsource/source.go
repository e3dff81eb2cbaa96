package pdfsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagenorm/model"
	"github.com/tsawler/pagenorm/text"
)

var (
	// ErrPageRange is returned for a page index outside the document
	ErrPageRange = errors.New("pdfsource: page out of range")

	// ErrMalformedPage is returned when a page's content cannot be decoded
	ErrMalformedPage = errors.New("pdfsource: malformed page content")
)

// Letter is the page size used when a page has no usable MediaBox
var Letter = model.Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}

// Config holds configuration for fragment extraction
type Config struct {
	// Scale converts PDF points to pixels (default: 96/72)
	Scale float64

	// WordSpaceRatio inserts a space between glyphs further apart than
	// this fraction of the font size (default: 0.3)
	WordSpaceRatio float64

	// SpanBreakRatio starts a new fragment when glyphs are further apart
	// than this fraction of the font size (default: 1.0)
	SpanBreakRatio float64

	// BaselineTolerance is the maximum baseline difference, in points,
	// between glyphs of one fragment (default: 0.5)
	BaselineTolerance float64

	// Logger receives debug messages about skipped content; nil uses slog.Default
	Logger *slog.Logger
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Scale:             96.0 / 72.0,
		WordSpaceRatio:    0.3,
		SpanBreakRatio:    1.0,
		BaselineTolerance: 0.5,
	}
}

// Source produces positioned fragments from the pages of a PDF document
type Source struct {
	reader *pdf.Reader
	closer io.Closer
	config Config
	logger *slog.Logger
	pages  int

	// mu serializes document access; the reader keeps no locks of its own
	mu sync.Mutex
}

// Open opens the PDF file at path with default configuration
func Open(path string) (*Source, error) {
	return OpenWithConfig(path, DefaultConfig())
}

// OpenWithConfig opens the PDF file at path
func OpenWithConfig(path string, config Config) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdfsource: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdfsource: stat %s: %w", path, err)
	}

	src, err := NewSourceWithConfig(f, info.Size(), config)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.closer = f
	return src, nil
}

// NewSource reads a PDF document from r with default configuration
func NewSource(r io.ReaderAt, size int64) (*Source, error) {
	return NewSourceWithConfig(r, size, DefaultConfig())
}

// NewSourceWithConfig reads a PDF document from r
func NewSourceWithConfig(r io.ReaderAt, size int64, config Config) (src *Source, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdfsource: read document: %v", rec)
		}
	}()

	if err := checkPDF(r); err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("pdfsource: read document: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Scale <= 0 {
		config.Scale = DefaultConfig().Scale
	}

	return &Source{
		reader: reader,
		config: config,
		logger: logger,
		pages:  reader.NumPage(),
	}, nil
}

// Close releases the underlying file when the source was opened from a path
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// PageCount returns the number of pages in the document
func (s *Source) PageCount() int {
	return s.pages
}

// Page extracts the fragments and background items of the page at the
// 0-based index. Coordinates are scaled to pixels with y growing downward.
// Page is safe for concurrent use.
func (s *Source) Page(ctx context.Context, index int) (model.Page, error) {
	if err := ctx.Err(); err != nil {
		return model.Page{}, err
	}
	if index < 0 || index >= s.PageCount() {
		return model.Page{}, fmt.Errorf("%w: %d of %d", ErrPageRange, index, s.PageCount())
	}

	s.mu.Lock()
	p := s.reader.Page(index + 1)
	if p.V.IsNull() {
		s.mu.Unlock()
		return model.Page{}, fmt.Errorf("%w: page %d has no dictionary", ErrMalformedPage, index)
	}

	box := mediaBox(p.V)
	transform := model.Translate(-box.X0, -box.Y0).Multiply(model.PageToPixels(box.Height(), s.config.Scale))
	page := model.NewPage(index, box.Width()*s.config.Scale, box.Height()*s.config.Scale)

	content, err := pageContent(p)
	if err != nil {
		s.mu.Unlock()
		return model.Page{}, fmt.Errorf("%w: page %d: %v", ErrMalformedPage, index, err)
	}
	links := s.linkItems(p.V, index, transform)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return model.Page{}, err
	}
	idx := newLinkIndex(links)

	for i, sp := range buildSpans(content.Text, s.config) {
		page.AddFragment(s.fragment(sp, index, i, transform, idx))
	}
	for _, l := range links {
		page.AddItem(l)
	}
	for i, r := range content.Rect {
		page.AddItem(rectItem(r, index, i, transform))
	}

	s.logger.Debug("pdfsource: page extracted",
		"page", index, "fragments", len(page.Fragments), "links", idx.len(), "rects", len(content.Rect))

	return *page, nil
}

// fragment converts a span to a pixel-space fragment
func (s *Source) fragment(sp *span, page, n int, m model.Matrix, links *linkIndex) model.Fragment {
	ascent := 0.8 * sp.size
	descent := 0.2 * sp.size
	box := m.TransformRect(model.Rect{
		X0: sp.x0,
		Y0: sp.baseline - descent,
		X1: sp.x1,
		Y1: sp.baseline + ascent,
	})

	// pdf.Text carries no fill colour, so every fragment is black
	f := model.Fragment{
		ID:      fmt.Sprintf("p%d-f%d", page, n),
		Content: text.Normalize(sp.content()),
		Origin:  m.Transform(model.Point{X: sp.x0, Y: sp.baseline}),
		BBox:    box,
		Font:    sp.font,
		Size:    sp.size * s.config.Scale,
		Flags:   model.FlagsFromFontName(sp.font),
		Color:   model.Black,
	}
	f.Link = links.lookup(box.Center())
	return f
}

// pageContent decodes the page content stream, converting decoder panics
// on damaged streams into errors
func pageContent(p pdf.Page) (content pdf.Content, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return p.Content(), nil
}

// mediaBox returns the page MediaBox, following inheritance through the
// page tree
func mediaBox(v pdf.Value) model.Rect {
	for node := v; !node.IsNull(); node = node.Key("Parent") {
		box := node.Key("MediaBox")
		if box.Kind() != pdf.Array || box.Len() < 4 {
			continue
		}
		r := model.Rect{
			X0: box.Index(0).Float64(),
			Y0: box.Index(1).Float64(),
			X1: box.Index(2).Float64(),
			Y1: box.Index(3).Float64(),
		}.Normalize()
		if r.IsEmpty() {
			break
		}
		return r
	}
	return Letter
}

// linkItems collects URI link annotations as background items in pixel space
func (s *Source) linkItems(v pdf.Value, page int, m model.Matrix) []model.BgItem {
	annots := v.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var items []model.BgItem
	for i := 0; i < annots.Len(); i++ {
		a := annots.Index(i)
		if a.Key("Subtype").Name() != "Link" {
			continue
		}
		uri := a.Key("A").Key("URI")
		if uri.IsNull() {
			s.logger.Debug("pdfsource: skipped link without URI", "page", page, "annotation", i)
			continue
		}
		rect := a.Key("Rect")
		if rect.Kind() != pdf.Array || rect.Len() < 4 {
			s.logger.Debug("pdfsource: skipped link without rect", "page", page, "annotation", i)
			continue
		}

		box := m.TransformRect(model.Rect{
			X0: rect.Index(0).Float64(),
			Y0: rect.Index(1).Float64(),
			X1: rect.Index(2).Float64(),
			Y1: rect.Index(3).Float64(),
		}.Normalize())
		items = append(items, model.BgItem{
			ID:   fmt.Sprintf("p%d-l%d", page, len(items)),
			Kind: model.ItemLink,
			BBox: box,
			URI:  uri.RawString(),
		})
	}
	return items
}

// rectItem converts a filled content-stream rectangle to a path item
func rectItem(r pdf.Rect, page, n int, m model.Matrix) model.BgItem {
	box := m.TransformRect(model.Rect{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y}.Normalize())
	return model.BgItem{
		ID:   fmt.Sprintf("p%d-r%d", page, n),
		Kind: model.ItemPath,
		BBox: box,
		Segments: []model.PathSegment{{
			Op:     "re",
			Points: []model.Point{{X: box.X0, Y: box.Y0}, {X: box.X1, Y: box.Y1}},
		}},
	}
}
