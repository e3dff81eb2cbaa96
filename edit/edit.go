// Package edit pairs edited line records from an editor with the lines of a
// normalized page, so a rewrite can replace exactly the original geometry.
package edit

import (
	"math"
	"strings"

	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/model"
)

// Edit is one edited line as an editor sends it back
type Edit struct {
	ID     string
	Page   int
	Text   string
	BBox   model.Rect
	Origin model.Point
	Style  layout.Style
	Link   string
}

// Match pairs an edit with the original line it replaces
type Match struct {
	Edit     Edit
	Block    *layout.Block
	Line     *layout.Line
	Distance float64
}

// MatchConfig holds configuration for line matching
type MatchConfig struct {
	// Tolerance is the exclusive maximum distance between an edit origin and
	// a fragment origin of the line (default: 2px)
	Tolerance float64
}

// DefaultMatchConfig returns sensible default configuration
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{Tolerance: 2}
}

// Matcher matches edits to lines
type Matcher struct {
	config MatchConfig
}

// NewMatcher creates a new matcher with default configuration
func NewMatcher() *Matcher {
	return &Matcher{config: DefaultMatchConfig()}
}

// NewMatcherWithConfig creates a new matcher with custom configuration
func NewMatcherWithConfig(config MatchConfig) *Matcher {
	return &Matcher{config: config}
}

// MatchLines matches edits with the default configuration
func MatchLines(blocks []*layout.Block, edits []Edit) ([]Match, []Edit) {
	return NewMatcher().Match(blocks, edits)
}

// Match pairs every edit with the line holding the fragment origin nearest
// to the edit origin. Edits with no origin closer than the tolerance are
// returned unmatched, in input order. Ties go to the earlier line.
func (m *Matcher) Match(blocks []*layout.Block, edits []Edit) ([]Match, []Edit) {
	var matches []Match
	var unmatched []Edit

	for _, e := range edits {
		best := Match{Distance: math.Inf(1)}
		for _, b := range blocks {
			for _, l := range b.Lines {
				for _, f := range l.Fragments {
					d := e.Origin.Distance(f.Origin)
					if d < best.Distance {
						best = Match{Edit: e, Block: b, Line: l, Distance: d}
					}
				}
			}
		}

		if best.Line == nil || best.Distance >= m.config.Tolerance {
			unmatched = append(unmatched, e)
			continue
		}
		matches = append(matches, best)
	}

	return matches, unmatched
}

// symbolMap rewrites glyphs that embedding fonts cannot draw. Icon-font
// code points become spaces, bullet variants become the canonical bullet.
var symbolMap = strings.NewReplacer(
	"\u25cf", "\u2022",
	"\u25cb", "\u2022",
	"\u25aa", "\u2022",
	"\u2731", "\u2022",
	"\u2217", "\u2022",
	"\u2192", "->",
	"\uf0e0", " ",
	"\uf095", " ",
	"\uf08c", " ",
	"\uf09b", " ",
)

// placeholderBullets are what broken encodings produce for a bullet. They
// are also ordinary characters, so only a line-leading one is rewritten.
var placeholderBullets = []string{"\u00ef", "\u00a7", "\u0083"}

// Sanitize prepares edited text for injection with a bundled font
func Sanitize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = symbolMap.Replace(leadingBullet(line))
	}
	return strings.Join(lines, "\n")
}

// leadingBullet replaces a placeholder bullet that opens the line and is
// followed by a space or nothing. "§ 12" stays a section reference.
func leadingBullet(line string) string {
	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	for _, p := range placeholderBullets {
		rest, ok := strings.CutPrefix(body, p)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		if next := strings.TrimLeft(rest, " \t"); next != "" && next[0] >= '0' && next[0] <= '9' {
			return line
		}
		return indent + "\u2022" + rest
	}
	return line
}
