package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/docrag/core"
)

// docxSegments reads a DOCX file paragraph by paragraph. DOCX is a zip
// archive; the document body lives in word/document.xml as <w:p> elements
// whose runs carry <w:t> text nodes.
func docxSegments(path string, fn SegmentFunc) error {
	rc, err := zip.OpenReader(path)
	if err != nil {
		slog.Error("docx extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: docx", core.ErrExtractionFailed)
	}
	defer rc.Close()

	body, err := readZipFile(rc.File, "word/document.xml")
	if err != nil {
		slog.Error("docx extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: docx", core.ErrExtractionFailed)
	}

	return walkParagraphs(body, fn)
}

func readZipFile(files []*zip.File, target string) ([]byte, error) {
	for _, f := range files {
		if f == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(f.Name), target) {
			r, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry not found: %s", target)
}

// walkParagraphs streams the document XML, emitting one segment per <w:p>.
func walkParagraphs(body []byte, fn SegmentFunc) error {
	dec := xml.NewDecoder(strings.NewReader(string(body)))
	var (
		inParagraph bool
		inText      bool
		text        strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			slog.Error("docx extraction error", "err", err)
			return fmt.Errorf("%w: docx", core.ErrExtractionFailed)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				text.Reset()
			case "t":
				if inParagraph {
					inText = true
				}
			}
		case xml.CharData:
			if inParagraph && inText {
				text.WriteString(string(t))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					if err := fn(text.String()); err != nil {
						return err
					}
				}
				inParagraph = false
				inText = false
				text.Reset()
			}
		}
	}
}
