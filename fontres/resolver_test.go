package fontres

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"golang.org/x/image/font/gofont/goregular"
)

func library(files ...string) fstest.MapFS {
	fsys := make(fstest.MapFS)
	for _, f := range files {
		fsys[f] = &fstest.MapFile{Data: goregular.TTF}
	}
	return fsys
}

func TestFamilyFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Helvetica-Bold", "Inter"},
		{"ABCDEF+Arial,Italic", "Inter"},
		{"TimesNewRomanPSMT", "Source_Serif_4"},
		{"CourierNewPS", "Roboto_Mono"},
		{"JetBrains Mono", "JetBrains_Mono"},
		{"Roboto Mono", "Roboto_Mono"},
		{"Roboto-Medium", "Roboto"},
		{"Lora-Italic", "Lora"},
		{"Fira Code", "Fira_Code"},
		{"CMR10", "Source_Serif_4"},
		{"NotoSerif", "Source_Serif_4"},
		{"Wingdings", "Inter"},
		{"", "Inter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FamilyFor(tt.name); got != tt.want {
				t.Errorf("FamilyFor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	tests := []struct {
		bold, italic bool
		want         string
	}{
		{false, false, "Regular"},
		{true, false, "Bold"},
		{false, true, "Italic"},
		{true, true, "BoldItalic"},
	}

	for _, tt := range tests {
		if got := Weight(tt.bold, tt.italic); got != tt.want {
			t.Errorf("Weight(%v, %v) = %q, want %q", tt.bold, tt.italic, got, tt.want)
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	fsys := library(
		"Inter/Inter-Regular.ttf",
		"Inter/Inter-SemiBold.ttf",
		"Inter/Inter-Italic.ttf",
		"Source_Serif_4/Source_Serif_4-Regular.ttf",
		"Source_Serif_4/Source_Serif_4-Bold.ttf",
	)

	tests := []struct {
		name         string
		font         string
		bold, italic bool
		wantPath     string
		wantKey      string
	}{
		{"exact weight", "Times-Bold", true, false, "Source_Serif_4/Source_Serif_4-Bold.ttf", "Source_Serif_4-Bold"},
		{"optical twin", "Helvetica-Bold", true, false, "Inter/Inter-SemiBold.ttf", "Inter-SemiBold"},
		{"italic falls back to regular", "Times-Italic", false, true, "Source_Serif_4/Source_Serif_4-Regular.ttf", "Source_Serif_4-Regular"},
		{"bold italic falls back to bold", "Times", true, true, "Source_Serif_4/Source_Serif_4-Bold.ttf", "Source_Serif_4-Bold"},
		{"missing family uses default", "Lora", false, true, "Inter/Inter-Italic.ttf", "Inter-Italic"},
		{"regular", "Arial", false, false, "Inter/Inter-Regular.ttf", "Inter-Regular"},
	}

	r := NewResolverFS(fsys)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, key, err := r.Resolve(tt.font, tt.bold, tt.italic)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p != tt.wantPath || key != tt.wantKey {
				t.Errorf("Resolve() = %q, %q, want %q, %q", p, key, tt.wantPath, tt.wantKey)
			}
		})
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := NewResolverFS(library())

	_, _, err := r.Resolve("Helvetica", false, false)
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("Expected ErrFontNotFound, got %v", err)
	}
}

func TestResolver_Load(t *testing.T) {
	r := NewResolverFS(library("Inter/Inter-Regular.ttf"))

	f, key, err := r.LoadFor("Helvetica", false, false)
	if err != nil {
		t.Fatalf("LoadFor() error = %v", err)
	}
	if key != "Inter-Regular" {
		t.Errorf("Expected Inter-Regular, got %q", key)
	}
	if f.NumGlyphs() == 0 {
		t.Error("Expected glyphs in the parsed font")
	}

	again, err := r.Load("Inter/Inter-Regular.ttf")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if again != f {
		t.Error("Expected the cached font on the second load")
	}

	if _, err := r.Load("Inter/Inter-Black.ttf"); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestResolver_LoadInvalid(t *testing.T) {
	fsys := fstest.MapFS{"Inter/Inter-Regular.ttf": &fstest.MapFile{Data: []byte("not a font")}}
	r := NewResolverFS(fsys)

	if _, err := r.Load("Inter/Inter-Regular.ttf"); err == nil {
		t.Error("Expected parse error for an invalid font")
	}
}

func TestNewResolver_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Inter"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Inter", "Inter-Regular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(dir)
	p, _, err := r.Resolve("Calibri", true, false)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.Path(p) != filepath.Join(dir, "Inter", "Inter-Regular.ttf") {
		t.Errorf("Unexpected OS path %q", r.Path(p))
	}
}
