// Package pagenorm provides a fluent API for turning the text of PDF pages
// into paragraphs, list items and metadata blocks with drift-free geometry.
//
// Basic usage:
//
//	results, warnings, err := pagenorm.Open("resume.pdf").Normalize(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagenorm.FormatWarnings(warnings))
//	}
//
// With options:
//
//	out, _, err := pagenorm.Open("resume.pdf").
//	    Pages(1, 2).
//	    Workers(4).
//	    JSON(ctx)
//
// The layout package can be used directly on fragments from any source.
package pagenorm

import (
	"context"

	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/pdfsource"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is opened by the first terminal operation and closed when it
// returns.
//
// Example:
//
//	results, warnings, err := pagenorm.Open("document.pdf").Normalize(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already-opened source.
// The caller is responsible for closing the source.
//
// Example:
//
//	src, err := pdfsource.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	results, warnings, err := pagenorm.FromSource(src).Normalize(ctx)
func FromSource(src *pdfsource.Source) *Extractor {
	return &Extractor{
		source:  src,
		options: defaultOptions(),
	}
}

// NormalizeFile normalizes every page of a PDF file with default settings
func NormalizeFile(ctx context.Context, path string) ([]*layout.Result, []Warning, error) {
	return Open(path).Normalize(ctx)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagenorm.Must(pagenorm.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a call to Normalize, JSON or HTML and
// panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	results := pagenorm.MustResult(pagenorm.Open("document.pdf").Normalize(ctx))
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
