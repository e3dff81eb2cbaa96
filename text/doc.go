// Package text provides content normalization for extracted text runs.
//
// Glyph runs coming out of a PDF often carry decomposed accents, no-break
// spaces and other invisible variation that makes string comparison
// unreliable. [Normalize] brings content into NFC form with ordinary spaces,
// and [IsBlank] / [TrimLeft] give the layout engine a single definition of
// whitespace.
//
//	content := text.Normalize(span)
//	if text.IsBlank(content) {
//	    // skip
//	}
package text
