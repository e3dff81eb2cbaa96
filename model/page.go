package model

// Page is one page of positioned content, already scaled to pixels.
type Page struct {
	// Index is the 0-based page index
	Index int

	// Width and Height are the page dimensions in pixels
	Width  float64
	Height float64

	// Fragments are the text runs in extraction order
	Fragments []Fragment

	// BgItems are non-text items that pass through normalization untouched
	BgItems []BgItem
}

// NewPage creates a new page with given dimensions
func NewPage(index int, width, height float64) *Page {
	return &Page{
		Index:     index,
		Width:     width,
		Height:    height,
		Fragments: make([]Fragment, 0),
		BgItems:   make([]BgItem, 0),
	}
}

// AddFragment appends a text fragment
func (p *Page) AddFragment(f Fragment) {
	p.Fragments = append(p.Fragments, f)
}

// AddItem appends a background item
func (p *Page) AddItem(item BgItem) {
	p.BgItems = append(p.BgItems, item)
}

// FragmentsInRegion returns fragments whose boxes intersect the region
func (p *Page) FragmentsInRegion(region Rect) []Fragment {
	var out []Fragment
	for _, f := range p.Fragments {
		if region.Intersects(f.BBox) {
			out = append(out, f)
		}
	}
	return out
}
