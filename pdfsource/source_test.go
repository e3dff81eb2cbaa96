package pdfsource

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tsawler/pagenorm/internal/pdftest"
	"github.com/tsawler/pagenorm/model"
)

// samplePDF is a one-page document with a bold heading and a linked word
func samplePDF() []byte {
	return pdftest.Build([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R /Annots [6 0 R] >>",
		pdftest.Font("Helvetica-Bold"),
		pdftest.Stream("BT /F1 12 Tf 72 700 Td (Hello World) Tj ET\nBT /F1 12 Tf 72 680 Td (Visit) Tj ET"),
		"<< /Type /Annot /Subtype /Link /Rect [70 676 110 692] /A << /S /URI /URI (https://example.com) >> >>",
	})
}

func newSampleSource(t *testing.T) *Source {
	t.Helper()
	data := samplePDF()
	src, err := NewSource(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	return src
}

func TestSource_Page(t *testing.T) {
	src := newSampleSource(t)

	if src.PageCount() != 1 {
		t.Fatalf("Expected 1 page, got %d", src.PageCount())
	}

	page, err := src.Page(context.Background(), 0)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if math.Abs(page.Width-816) > 1e-6 || math.Abs(page.Height-1056) > 1e-6 {
		t.Errorf("Expected 816x1056 pixels, got %.2fx%.2f", page.Width, page.Height)
	}
	if len(page.Fragments) != 2 {
		t.Fatalf("Expected 2 fragments, got %d: %+v", len(page.Fragments), page.Fragments)
	}

	hello := page.Fragments[0]
	if hello.Content != "Hello World" {
		t.Errorf("Expected 'Hello World', got %q", hello.Content)
	}
	if hello.ID != "p0-f0" {
		t.Errorf("Expected ID p0-f0, got %s", hello.ID)
	}
	if math.Abs(hello.Origin.X-96) > 1e-6 || math.Abs(hello.Origin.Y-(792-700)*96.0/72.0) > 1e-6 {
		t.Errorf("Unexpected origin %+v", hello.Origin)
	}
	if math.Abs(hello.Size-16) > 1e-6 {
		t.Errorf("Expected size 16px, got %.2f", hello.Size)
	}
	if !hello.Bold() {
		t.Error("Expected bold flag from the font name")
	}
	if hello.BBox.Y0 >= hello.Origin.Y || hello.BBox.Y1 <= hello.Origin.Y {
		t.Errorf("Box %+v should straddle the baseline %.2f", hello.BBox, hello.Origin.Y)
	}
	if hello.Link != "" {
		t.Errorf("Expected no link on the heading, got %q", hello.Link)
	}

	visit := page.Fragments[1]
	if visit.Link != "https://example.com" {
		t.Errorf("Expected link on 'Visit', got %q", visit.Link)
	}

	var links []model.BgItem
	for _, item := range page.BgItems {
		if item.Kind == model.ItemLink {
			links = append(links, item)
		}
	}
	if len(links) != 1 || links[0].URI != "https://example.com" {
		t.Errorf("Expected one link item, got %+v", links)
	}
}

func TestSource_PageErrors(t *testing.T) {
	src := newSampleSource(t)

	if _, err := src.Page(context.Background(), 1); !errors.Is(err, ErrPageRange) {
		t.Errorf("Expected ErrPageRange, got %v", err)
	}
	if _, err := src.Page(context.Background(), -1); !errors.Is(err, ErrPageRange) {
		t.Errorf("Expected ErrPageRange, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Page(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := os.WriteFile(path, samplePDF(), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if src.PageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", src.PageCount())
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected error for a missing file")
	}

	garbage := []byte("not a pdf at all")
	if _, err := NewSource(bytes.NewReader(garbage), int64(len(garbage))); err == nil {
		t.Error("Expected error for a non-PDF input")
	}
}

func TestMediaBoxFallback(t *testing.T) {
	data := pdftest.Build([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /Contents 4 0 R >>",
		pdftest.Stream(""),
	})
	src, err := NewSource(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	page, err := src.Page(context.Background(), 0)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if math.Abs(page.Width-816) > 1e-6 {
		t.Errorf("Expected letter width fallback, got %.2f", page.Width)
	}
	if len(page.Fragments) != 0 {
		t.Errorf("Expected no fragments, got %d", len(page.Fragments))
	}
}

func TestSource_ConcurrentPages(t *testing.T) {
	data := pdftest.Document(
		pdftest.Content(pdftest.Text{X: 72, Y: 700, Size: 12, Content: "Page one"}),
		pdftest.Content(pdftest.Text{X: 72, Y: 700, Size: 12, Content: "Page two"}),
		pdftest.Content(pdftest.Text{X: 72, Y: 700, Size: 12, Content: "Page three"}),
	)
	src, err := NewSource(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	want := []string{"Page one", "Page two", "Page three"}
	got := make([]string, len(want))

	var wg sync.WaitGroup
	for i := range want {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page, err := src.Page(context.Background(), i)
			if err != nil || len(page.Fragments) != 1 {
				return
			}
			got[i] = page.Fragments[0].Content
		}(i)
	}
	wg.Wait()

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Page %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
