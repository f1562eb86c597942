package extract

import (
	"fmt"
	"strings"

	"github.com/poiesic/docrag/core"
)

// SegmentFunc receives one extracted segment (line, page or paragraph).
// Returning an error stops the extraction.
type SegmentFunc func(segment string) error

// Text extracts the full text content of a validated document.
func Text(path string, fileType core.FileType) (string, error) {
	var sb strings.Builder
	first := true
	err := Segments(path, fileType, func(segment string) error {
		if segment == "" {
			return nil
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		sb.WriteString(segment)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Segments streams the document's text incrementally, calling fn once per
// line (txt), page (pdf) or paragraph (docx).
func Segments(path string, fileType core.FileType, fn SegmentFunc) error {
	switch fileType {
	case core.FileTypeTXT:
		return txtSegments(path, fn)
	case core.FileTypePDF:
		return pdfSegments(path, fn)
	case core.FileTypeDOCX:
		return docxSegments(path, fn)
	default:
		return fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, fileType)
	}
}
