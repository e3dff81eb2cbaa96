package pdfsource

import (
	"bytes"
	"errors"
	"testing"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want inputKind
	}{
		{"pdf", []byte("%PDF-1.7\n..."), kindPDF},
		{"pdf after junk", append(bytes.Repeat([]byte{0}, 100), []byte("%PDF-1.4")...), kindPDF},
		{"zip", []byte("PK\x03\x04rest"), kindZIP},
		{"html", []byte("  <!doctype html><html></html>"), kindHTML},
		{"html tag", []byte("<HTML>"), kindHTML},
		{"empty", nil, kindEmpty},
		{"text", []byte("hello"), kindUnknown},
		{"marker too late", append(bytes.Repeat([]byte(" "), headerWindow), []byte("%PDF-1.4")...), kindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sniff(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("sniff() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewSource_NotPDF(t *testing.T) {
	data := []byte("PK\x03\x04 an office document")

	_, err := NewSource(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("Expected ErrNotPDF, got %v", err)
	}
	if want := "ZIP archive"; !bytes.Contains([]byte(err.Error()), []byte(want)) {
		t.Errorf("Expected error to name the %s, got %v", want, err)
	}
}
