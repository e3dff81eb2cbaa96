package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// spaceReplacer maps space variants onto U+0020
var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2007", " ", // figure space
	"\u202f", " ", // narrow no-break space
	"\u2009", " ", // thin space
	"\u200a", " ", // hair space
)

// Normalize returns s in Unicode NFC form with space variants replaced by
// ordinary spaces. Zero-width characters are removed.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFC.String(s)
	s = spaceReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
}

// IsBlank reports whether s contains only whitespace
func IsBlank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

// TrimLeft removes leading whitespace
func TrimLeft(s string) string {
	return strings.TrimLeftFunc(s, isSpace)
}

// Trim removes leading and trailing whitespace
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// FirstRune returns the first non-space rune of s and whether one exists
func FirstRune(s string) (rune, bool) {
	for _, r := range s {
		if !isSpace(r) {
			return r, true
		}
	}
	return 0, false
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
