// Package export writes normalized pages as JSON or HTML.
//
// The JSON form follows the page contract consumed by editors:
//
//	{"page": 0, "blocks": [...], "bg_items": [...], "stats": {"leading": 16, "anchor_count": 3}}
//
// Colors are written as #rrggbb strings. The HTML form is a structural view
// of the same blocks, with the resolved geometry kept in data-* attributes.
package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/pagenorm/layout"
)

// Format defines the available export formats
type Format int

const (
	// FormatJSON exports an array of page objects
	FormatJSON Format = iota
	// FormatJSONL exports one page object per line
	FormatJSONL
	// FormatHTML exports a structural HTML document
	FormatHTML
)

// String returns a human-readable representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// ParseFormat parses a format name as accepted on the command line
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return 0, fmt.Errorf("export: unknown format %q", s)
}

// ExportConfig holds configuration options for export
type ExportConfig struct {
	// Format specifies the export format
	Format Format

	// PrettyPrint enables indentation for JSON formats
	PrettyPrint bool

	// IncludeFragments adds the per-line fragments to JSON blocks
	IncludeFragments bool

	// Precision is the number of decimals kept for coordinates (default: 2)
	Precision int

	// Title is the HTML document title
	Title string
}

// DefaultExportConfig returns sensible defaults for export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:           FormatJSON,
		PrettyPrint:      false,
		IncludeFragments: true,
		Precision:        2,
		Title:            "pagenorm",
	}
}

// HTMLExportConfig returns config for the HTML export
func HTMLExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = FormatHTML
	return config
}

// Exporter writes normalized pages
type Exporter struct {
	config ExportConfig
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{
		config: DefaultExportConfig(),
	}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	return &Exporter{
		config: config,
	}
}

// Export writes the pages to w in the configured format
func (e *Exporter) Export(results []*layout.Result, w io.Writer) error {
	switch e.config.Format {
	case FormatJSON:
		return e.exportJSON(results, w)
	case FormatJSONL:
		return e.exportJSONL(results, w)
	case FormatHTML:
		return e.exportHTML(results, w)
	default:
		return fmt.Errorf("export: unsupported format %s", e.config.Format)
	}
}

// ExportToString exports to a string
func (e *Exporter) ExportToString(results []*layout.Result) (string, error) {
	var sb strings.Builder
	if err := e.Export(results, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// round limits v to the configured precision
func (e *Exporter) round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(e.config.Precision))
	return math.Round(v*p) / p
}

// number formats v for an attribute value
func (e *Exporter) number(v float64) string {
	return strconv.FormatFloat(e.round(v), 'f', -1, 64)
}
