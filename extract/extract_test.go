package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/docrag/core"
)

func writeDocx(t *testing.T, dir string, paragraphs []string) string {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		if err := xmlEscape(&body, p); err != nil {
			t.Fatalf("Failed to escape paragraph: %v", err)
		}
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("Failed to create zip entry: %v", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		t.Fatalf("Failed to write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}

	path := filepath.Join(dir, "sample.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write docx: %v", err)
	}
	return path
}

func xmlEscape(buf *bytes.Buffer, s string) error {
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return nil
}

func TestTxtSegments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n\nline four"), 0644); err != nil {
		t.Fatalf("Failed to write txt: %v", err)
	}

	var segments []string
	err := Segments(path, core.FileTypeTXT, func(s string) error {
		segments = append(segments, s)
		return nil
	})
	if err != nil {
		t.Fatalf("Segments failed: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %v", len(segments), segments)
	}
	if segments[0] != "line one" || segments[3] != "line four" {
		t.Fatalf("Unexpected segments: %v", segments)
	}
}

func TestTextJoinsSegments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta"), 0644); err != nil {
		t.Fatalf("Failed to write txt: %v", err)
	}

	text, err := Text(path, core.FileTypeTXT)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "alpha\nbeta" {
		t.Fatalf("Expected joined text, got %q", text)
	}
}

func TestDocxSegments(t *testing.T) {
	dir := t.TempDir()
	path := writeDocx(t, dir, []string{"first paragraph", "second & third"})

	var segments []string
	err := Segments(path, core.FileTypeDOCX, func(s string) error {
		segments = append(segments, s)
		return nil
	})
	if err != nil {
		t.Fatalf("Segments failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d: %v", len(segments), segments)
	}
	if segments[0] != "first paragraph" {
		t.Fatalf("Unexpected first paragraph: %q", segments[0])
	}
	if segments[1] != "second & third" {
		t.Fatalf("Unexpected second paragraph: %q", segments[1])
	}
}

func TestDocxCorruptWrapsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	err := Segments(path, core.FileTypeDOCX, func(string) error { return nil })
	if !errors.Is(err, core.ErrExtractionFailed) {
		t.Fatalf("Expected ErrExtractionFailed, got %v", err)
	}
}

func TestPdfCorruptWrapsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-nope"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	err := Segments(path, core.FileTypePDF, func(string) error { return nil })
	if !errors.Is(err, core.ErrExtractionFailed) {
		t.Fatalf("Expected ErrExtractionFailed, got %v", err)
	}
}

func TestSegmentsUnsupported(t *testing.T) {
	err := Segments("/tmp/x.png", core.FileType("png"), func(string) error { return nil })
	if !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSegmentCallbackErrorStops(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree"), 0644); err != nil {
		t.Fatalf("Failed to write txt: %v", err)
	}

	wantErr := errors.New("stop")
	count := 0
	err := Segments(path, core.FileTypeTXT, func(string) error {
		count++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected callback error, got %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected extraction to stop after first segment, got %d", count)
	}
}
