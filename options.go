package pagenorm

import (
	"runtime"

	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/pdfsource"
)

// ExtractOptions holds configuration for page normalization.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Concurrency
	workers int

	// Fail on the first unreadable page instead of warning
	strict bool

	// Phase configuration
	normalizer layout.NormalizerConfig
	source     pdfsource.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:      nil, // nil means all pages
		workers:    runtime.GOMAXPROCS(0),
		strict:     false,
		normalizer: layout.DefaultNormalizerConfig(),
		source:     pdfsource.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy slices
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	newOpts.normalizer.MarkerConfig.PrimaryGlyphs = cloneStrings(o.normalizer.MarkerConfig.PrimaryGlyphs)
	newOpts.normalizer.MarkerConfig.SubGlyphs = cloneStrings(o.normalizer.MarkerConfig.SubGlyphs)
	newOpts.normalizer.MarkerConfig.PlaceholderGlyphs = cloneStrings(o.normalizer.MarkerConfig.PlaceholderGlyphs)

	return newOpts
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
