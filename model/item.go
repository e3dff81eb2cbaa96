package model

// ItemKind represents the type of a non-text page item
type ItemKind int

const (
	ItemUnknown ItemKind = iota
	ItemImage
	ItemPath
	ItemLink
)

func (k ItemKind) String() string {
	switch k {
	case ItemImage:
		return "image"
	case ItemPath:
		return "pdf_path"
	case ItemLink:
		return "link"
	default:
		return "unknown"
	}
}

// PathSegment is one drawing operation of a vector path
type PathSegment struct {
	// Op is one of "m", "l", "c", "re", "close"
	Op string

	// Points holds the operands in pixels
	Points []Point
}

// BgItem is a non-text item (image, vector path, link annotation).
type BgItem struct {
	ID   string
	Kind ItemKind
	BBox Rect

	// URI is set for link annotations
	URI string

	// Data holds encoded image bytes
	Data []byte

	// Segments describe vector paths
	Segments []PathSegment

	// Fill and Stroke are path colors; nil when absent
	Fill   *Color
	Stroke *Color

	// StrokeWidth is the path line width in pixels
	StrokeWidth float64
}
