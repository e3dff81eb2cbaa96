// Package fontres maps PDF font names onto a bundled font library.
//
// Fonts live in one folder per family, named <Family>/<Family>-<Weight>.ttf.
// A request for a weight the library lacks falls back through an ordered
// rule table: the exact weight, its optical twin one step lighter, generic
// bold/italic fallbacks, regular, then the default family.
package fontres

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// ErrFontNotFound is returned when no candidate file exists
var ErrFontNotFound = errors.New("fontres: font not found")

// DefaultFamily is used when a name matches no known family
const DefaultFamily = "Inter"

// familyMap is checked in order; specific names come before generic keywords
var familyMap = []struct {
	keyword string
	family  string
}{
	{"roboto mono", "Roboto_Mono"},
	{"jetbrains mono", "JetBrains_Mono"},
	{"fira code", "Fira_Code"},
	{"open sans", "Open_Sans"},
	{"playfair display", "Playfair_Display"},
	{"libre baskerville", "Libre_Baskerville"},
	{"source serif", "Source_Serif_4"},
	{"crimson pro", "Crimson_Pro"},
	{"inter", "Inter"},
	{"roboto", "Roboto"},
	{"lora", "Lora"},
	{"poppins", "Poppins"},
	{"montserrat", "Montserrat"},
	{"merriweather", "Merriweather"},
	{"oswald", "Oswald"},
	{"ubuntu", "Ubuntu"},
	{"arial", "Inter"},
	{"helvetica", "Inter"},
	{"calibri", "Inter"},
	{"verdana", "Inter"},
	{"tahoma", "Inter"},
	{"mono", "Roboto_Mono"},
	{"courier", "Roboto_Mono"},
	{"times", "Source_Serif_4"},
	{"roman", "Source_Serif_4"},
	{"georgia", "Source_Serif_4"},
	{"palatino", "Source_Serif_4"},
	{"minion", "Source_Serif_4"},
	{"baskerville", "Source_Serif_4"},
	{"cambria", "Source_Serif_4"},
	{"garamond", "Source_Serif_4"},
	{"libertine", "Source_Serif_4"},
	{"cm", "Source_Serif_4"},
	{"sfrm", "Source_Serif_4"},
	{"nimbus", "Source_Serif_4"},
}

// FamilyFor returns the library family for a PDF font name
func FamilyFor(name string) string {
	lower := strings.ToLower(name)
	for _, m := range familyMap {
		if strings.Contains(lower, m.keyword) {
			return m.family
		}
	}

	switch {
	case strings.Contains(lower, "serif"):
		return "Source_Serif_4"
	case strings.Contains(lower, "fira"):
		return "Roboto_Mono"
	}
	return DefaultFamily
}

// weightRule lists the weights tried, in order, for one style request
type weightRule struct {
	applies func(bold, italic bool) bool
	weights []string
}

var weightRules = []weightRule{
	{
		applies: func(bold, italic bool) bool { return bold && italic },
		weights: []string{"BoldItalic", "SemiBoldItalic", "Bold", "Italic", "Regular"},
	},
	{
		applies: func(bold, italic bool) bool { return bold },
		weights: []string{"Bold", "SemiBold", "Medium", "Regular"},
	},
	{
		applies: func(bold, italic bool) bool { return italic },
		weights: []string{"Italic", "Regular"},
	},
	{
		applies: func(bold, italic bool) bool { return true },
		weights: []string{"Regular"},
	},
}

// Weight returns the exact weight name for a style
func Weight(bold, italic bool) string {
	return candidateWeights(bold, italic)[0]
}

func candidateWeights(bold, italic bool) []string {
	for _, r := range weightRules {
		if r.applies(bold, italic) {
			return r.weights
		}
	}
	return []string{"Regular"}
}

type resolveKey struct {
	family string
	bold   bool
	italic bool
}

type resolved struct {
	path     string
	styleKey string
}

// Resolver finds and loads font files from a font library
type Resolver struct {
	fsys fs.FS
	root string

	mu       sync.Mutex
	resolved map[resolveKey]resolved
	fonts    map[string]*sfnt.Font
}

// NewResolver creates a resolver over the font library in dir
func NewResolver(dir string) *Resolver {
	r := NewResolverFS(os.DirFS(dir))
	r.root = dir
	return r
}

// NewResolverFS creates a resolver over a font library file system
func NewResolverFS(fsys fs.FS) *Resolver {
	return &Resolver{
		fsys:     fsys,
		resolved: make(map[resolveKey]resolved),
		fonts:    make(map[string]*sfnt.Font),
	}
}

// Resolve returns the library path, relative to the library root, and the
// style key (<Family>-<Weight>) of the best file for a PDF font name
func (r *Resolver) Resolve(name string, bold, italic bool) (string, string, error) {
	family := FamilyFor(name)
	key := resolveKey{family: family, bold: bold, italic: italic}

	r.mu.Lock()
	defer r.mu.Unlock()

	if hit, ok := r.resolved[key]; ok {
		return hit.path, hit.styleKey, nil
	}

	families := []string{family}
	if family != DefaultFamily {
		families = append(families, DefaultFamily)
	}
	for _, fam := range families {
		for _, weight := range candidateWeights(bold, italic) {
			p := path.Join(fam, fam+"-"+weight+".ttf")
			if _, err := fs.Stat(r.fsys, p); err != nil {
				continue
			}
			hit := resolved{path: p, styleKey: fam + "-" + weight}
			r.resolved[key] = hit
			return hit.path, hit.styleKey, nil
		}
	}

	return "", "", fmt.Errorf("%w: %s (%s)", ErrFontNotFound, name, Weight(bold, italic))
}

// Path returns the operating-system path of a resolved library path
func (r *Resolver) Path(p string) string {
	if r.root == "" {
		return p
	}
	return filepath.Join(r.root, filepath.FromSlash(p))
}

// Load parses the font at a resolved library path. Parsed fonts are cached.
func (r *Resolver) Load(p string) (*sfnt.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.fonts[p]; ok {
		return f, nil
	}

	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("fontres: read %s: %w", p, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontres: parse %s: %w", p, err)
	}
	r.fonts[p] = f
	return f, nil
}

// LoadFor resolves and loads the best font for a PDF font name
func (r *Resolver) LoadFor(name string, bold, italic bool) (*sfnt.Font, string, error) {
	p, styleKey, err := r.Resolve(name, bold, italic)
	if err != nil {
		return nil, "", err
	}
	f, err := r.Load(p)
	if err != nil {
		return nil, "", err
	}
	return f, styleKey, nil
}
