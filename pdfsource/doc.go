// Package pdfsource extracts positioned text fragments from PDF pages.
//
// Glyph-level text decoded by github.com/ledongthuc/pdf is merged into runs
// of one font, size and baseline, NFC-normalized and mapped from PDF points
// (origin bottom-left) to top-down pixels. Link annotations become link
// items and resolve the Link target of the fragments they cover.
//
//	src, err := pdfsource.Open("resume.pdf")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	page, err := src.Page(ctx, 0)
package pdfsource
