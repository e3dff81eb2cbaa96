package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/tsawler/pagenorm/export"
	"github.com/tsawler/pagenorm/internal/pdftest"
)

func writeInput(t *testing.T) string {
	t.Helper()
	page := pdftest.Content(
		pdftest.Text{X: 72, Y: 700, Size: 12, Content: "Profile"},
		pdftest.Text{X: 72, Y: 650, Size: 12, Content: "Builds things"},
	)
	path := filepath.Join(t.TempDir(), "input.pdf")
	if err := os.WriteFile(path, pdftest.Document(page, page), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1", []int{1}, false},
		{"1, 3-5", []int{1, 3, 4, 5}, false},
		{"2-2,", []int{2}, false},
		{"0", nil, true},
		{"5-3", nil, true},
		{"a", nil, true},
		{"1-b", nil, true},
	}

	for _, tt := range tests {
		got, err := parsePages(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePages(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parsePages(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parsePages(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestParseArgs(t *testing.T) {
	defaults := options{format: export.FormatJSON, workers: 2, scale: 1.5, fontsDir: "/fonts"}

	opts, err := parseArgs([]string{"-format", "html", "-pages", "1-2", "-workers", "3", "doc.pdf"}, defaults, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if opts.input != "doc.pdf" || opts.format != export.FormatHTML || opts.workers != 3 {
		t.Errorf("Unexpected options %+v", opts)
	}
	if len(opts.pages) != 2 || opts.scale != 1.5 || opts.fontsDir != "/fonts" {
		t.Errorf("Expected defaults to carry through, got %+v", opts)
	}

	errorCases := [][]string{
		{},
		{"a.pdf", "b.pdf"},
		{"-format", "xml", "doc.pdf"},
		{"-pages", "x", "doc.pdf"},
		{"-scale", "0", "doc.pdf"},
	}
	for _, args := range errorCases {
		if _, err := parseArgs(args, defaults, io.Discard); err == nil {
			t.Errorf("parseArgs(%v): expected error", args)
		}
	}

	if _, err := parseArgs([]string{"-h"}, defaults, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}

func TestRun_JSON(t *testing.T) {
	input := writeInput(t)
	var out, logs bytes.Buffer

	opts := options{input: input, format: export.FormatJSON, workers: 2, scale: 96.0 / 72.0, pages: []int{2}}
	if err := run(context.Background(), opts, &out, testLogger(&logs)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var pages []export.ExportedPage
	if err := json.Unmarshal(out.Bytes(), &pages); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(pages) != 1 || pages[0].Page != 1 {
		t.Fatalf("Expected only the second page, got %d pages", len(pages))
	}
	if len(pages[0].Blocks) != 2 || pages[0].Blocks[1].Text != "Builds things" {
		t.Errorf("Unexpected blocks %+v", pages[0].Blocks)
	}
	if !strings.Contains(logs.String(), "pagenorm: normalized") {
		t.Errorf("Expected a summary log line, got %s", logs.String())
	}
}

func TestRun_OutputFile(t *testing.T) {
	input := writeInput(t)
	outPath := filepath.Join(t.TempDir(), "out.html")

	opts := options{input: input, format: export.FormatHTML, workers: 1, scale: 1, out: outPath}
	if err := run(context.Background(), opts, io.Discard, testLogger(&bytes.Buffer{})); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<section class=\"page\"") {
		t.Errorf("Expected HTML page sections, got %s", data)
	}
}

func TestRun_Errors(t *testing.T) {
	var logs bytes.Buffer

	missing := options{input: filepath.Join(t.TempDir(), "missing.pdf"), workers: 1, scale: 1}
	if err := run(context.Background(), missing, io.Discard, testLogger(&logs)); err == nil {
		t.Error("Expected error for a missing input")
	}

	badFonts := options{input: writeInput(t), workers: 1, scale: 1, fontsDir: filepath.Join(t.TempDir(), "nope")}
	if err := run(context.Background(), badFonts, io.Discard, testLogger(&logs)); err == nil {
		t.Error("Expected error for a missing font library")
	}
}

func TestRun_FontReport(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Inter"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Inter", "Inter-Regular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	opts := options{input: writeInput(t), format: export.FormatJSON, workers: 1, scale: 1, fontsDir: dir}
	if err := run(context.Background(), opts, io.Discard, testLogger(&logs)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(logs.String(), "pagenorm: font resolved") || !strings.Contains(logs.String(), "Inter-Regular") {
		t.Errorf("Expected Helvetica to resolve to Inter-Regular, got %s", logs.String())
	}
}
