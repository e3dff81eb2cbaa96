package pagenorm

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pagenorm/export"
	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/pdfsource"
)

// Extractor provides a fluent interface for normalizing PDF pages.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	source   *pdfsource.Source

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// openSource returns the source to read and a function releasing it.
// Sources passed to FromSource are left open.
func (e *Extractor) openSource() (*pdfsource.Source, func(), error) {
	if e.source != nil {
		return e.source, func() {}, nil
	}
	if e.filename == "" {
		return nil, nil, ErrNoFile
	}

	src, err := pdfsource.OpenWithConfig(e.filename, e.options.source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return src, func() { src.Close() }, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to normalize (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	results, _, err := pagenorm.Open("doc.pdf").Pages(1, 3, 5).Normalize(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to normalize (1-indexed, inclusive).
//
// Example:
//
//	results, _, err := pagenorm.Open("doc.pdf").PageRange(5, 10).Normalize(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Workers sets how many pages are processed concurrently.
// The default is GOMAXPROCS.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		newExt.err = fmt.Errorf("%w: %d", ErrInvalidWorkers, n)
		return newExt
	}
	newExt.options.workers = n
	return newExt
}

// Strict makes an unreadable page fail the whole run. By default such
// pages are skipped with a warning.
func (e *Extractor) Strict() *Extractor {
	newExt := e.clone()
	newExt.options.strict = true
	return newExt
}

// WithConfig replaces the layout configuration of every phase.
//
// Example:
//
//	cfg := layout.DefaultNormalizerConfig()
//	cfg.SnapConfig.SnapTolerance = 3
//	results, _, err := pagenorm.Open("doc.pdf").WithConfig(cfg).Normalize(ctx)
func (e *Extractor) WithConfig(config layout.NormalizerConfig) *Extractor {
	newExt := e.clone()
	newExt.options.normalizer = config
	return newExt
}

// WithSourceConfig replaces the fragment extraction configuration. It has
// no effect on an Extractor created with FromSource.
func (e *Extractor) WithSourceConfig(config pdfsource.Config) *Extractor {
	newExt := e.clone()
	newExt.options.source = config
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	src, release, err := e.openSource()
	if err != nil {
		return 0, err
	}
	defer release()

	return src.PageCount(), nil
}

// Normalize extracts and normalizes the selected pages. Results are in page
// order. Pages that cannot be read are skipped with a warning unless Strict
// was set; warnings raised by normalization itself are returned as well.
//
// Example:
//
//	results, warnings, err := pagenorm.Open("document.pdf").Normalize(ctx)
//	for _, r := range results {
//	    for _, b := range r.Blocks {
//	        fmt.Println(b.Type, b.GetText())
//	    }
//	}
func (e *Extractor) Normalize(ctx context.Context) ([]*layout.Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	src, release, err := e.openSource()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	indices, err := e.resolvePages(src.PageCount())
	if err != nil {
		return nil, nil, err
	}

	normalizer := layout.NewNormalizerWithConfig(e.options.normalizer)
	results := make([]*layout.Result, len(indices))
	pageErrs := make([]error, len(indices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)
	for i, index := range indices {
		i, index := i, index
		g.Go(func() error {
			page, err := src.Page(gctx, index)
			if err != nil {
				if e.options.strict || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return fmt.Errorf("page %d: %w", index+1, err)
				}
				pageErrs[i] = err
				return nil
			}
			results[i] = normalizer.Normalize(page)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var out []*layout.Result
	var warnings []Warning
	for i, index := range indices {
		if pageErrs[i] != nil {
			warnings = append(warnings, Warning{Page: index + 1, Message: "skipped: " + pageErrs[i].Error()})
			continue
		}
		for _, msg := range results[i].Warnings {
			warnings = append(warnings, Warning{Page: index + 1, Message: msg})
		}
		out = append(out, results[i])
	}

	return out, warnings, nil
}

// JSON normalizes the selected pages and encodes them as a JSON array of
// page objects.
func (e *Extractor) JSON(ctx context.Context) (string, []Warning, error) {
	return e.ExportWithConfig(ctx, export.DefaultExportConfig())
}

// HTML normalizes the selected pages and renders them as an HTML document.
func (e *Extractor) HTML(ctx context.Context) (string, []Warning, error) {
	return e.ExportWithConfig(ctx, export.HTMLExportConfig())
}

// ExportWithConfig normalizes the selected pages and exports them with
// custom export configuration.
func (e *Extractor) ExportWithConfig(ctx context.Context, config export.ExportConfig) (string, []Warning, error) {
	results, warnings, err := e.Normalize(ctx)
	if err != nil {
		return "", nil, err
	}

	out, err := export.NewExporterWithConfig(config).ExportToString(results)
	if err != nil {
		return "", warnings, fmt.Errorf("failed to export: %w", err)
	}
	return out, warnings, nil
}

// resolvePages converts the selected pages to sorted, unique 0-based indices.
func (e *Extractor) resolvePages(pageCount int) ([]int, error) {
	// If no pages specified, use all pages
	if len(e.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	// Convert 1-indexed to 0-indexed and validate
	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("%w: page %d (1-%d)", ErrPageOutOfRange, p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	// Sort pages in order
	sort.Ints(pageIndices)
	return pageIndices, nil
}
