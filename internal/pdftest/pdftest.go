// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Build assembles a PDF file from object bodies, numbering them from 1
// and writing a matching xref table. Object 1 must be the catalog.
func Build(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, o := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Stream returns a stream object body holding content
func Stream(content string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
}

// Font returns a Type1 font dictionary with every glyph 500 units wide
func Font(baseFont string) string {
	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	return "<< /Type /Font /Subtype /Type1 /BaseFont /" + baseFont +
		" /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>"
}

// Text is one line of text drawn at x, y in points
type Text struct {
	X, Y    float64
	Size    float64
	Content string
}

// Content returns a content stream drawing the texts with font /F1
func Content(texts ...Text) string {
	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "BT /F1 %g Tf %g %g Td (%s) Tj ET", t.Size, t.X, t.Y, t.Content)
	}
	return sb.String()
}

// Document builds a letter-size document with one page per content stream,
// all sharing a Helvetica font
func Document(pages ...string) []byte {
	n := len(pages)
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), n),
		Font("Helvetica"),
	}
	for i, content := range pages {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			Stream(content),
		)
	}
	return Build(objects)
}
