package pdfsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrNotPDF is returned when the input does not start with a PDF header
var ErrNotPDF = errors.New("pdfsource: not a PDF document")

// headerWindow is how far into the file the %PDF- marker may appear
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// inputKind names what a non-PDF input looks like, for error messages
type inputKind int

const (
	kindUnknown inputKind = iota
	kindPDF
	kindZIP
	kindHTML
	kindEmpty
)

func (k inputKind) String() string {
	switch k {
	case kindPDF:
		return "PDF"
	case kindZIP:
		return "ZIP archive (DOCX, XLSX, PPTX or ODT)"
	case kindHTML:
		return "HTML"
	case kindEmpty:
		return "empty input"
	default:
		return "unknown data"
	}
}

// sniff classifies the start of r. Some producers write bytes before the
// header, so the marker is searched within the first headerWindow bytes.
func sniff(r io.ReaderAt) (inputKind, error) {
	head := make([]byte, headerWindow)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return kindUnknown, err
	}
	head = head[:n]

	switch {
	case len(head) == 0:
		return kindEmpty, nil
	case bytes.Contains(head, pdfMagic):
		return kindPDF, nil
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return kindZIP, nil
	case looksLikeHTML(head):
		return kindHTML, nil
	}
	return kindUnknown, nil
}

func looksLikeHTML(data []byte) bool {
	data = bytes.ToUpper(bytes.TrimLeft(data, " \t\r\n"))
	return bytes.HasPrefix(data, []byte("<!DOCTYPE HTML")) || bytes.HasPrefix(data, []byte("<HTML"))
}

// checkPDF returns ErrNotPDF, naming what was found, for non-PDF input
func checkPDF(r io.ReaderAt) error {
	kind, err := sniff(r)
	if err != nil {
		return fmt.Errorf("pdfsource: read header: %w", err)
	}
	if kind != kindPDF {
		return fmt.Errorf("%w: found %s", ErrNotPDF, kind)
	}
	return nil
}
