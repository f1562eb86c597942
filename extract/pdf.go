package extract

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/poiesic/docrag/core"
)

// pdfSegments reads a PDF page by page. Pages that fail to decode are
// skipped so one broken page does not lose the rest of the document.
func pdfSegments(path string, fn SegmentFunc) error {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("pdf extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: pdf", core.ErrExtractionFailed)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.Error("pdf extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: pdf", core.ErrExtractionFailed)
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		slog.Error("pdf extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: pdf", core.ErrExtractionFailed)
	}

	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			slog.Warn("skipping unreadable pdf page", "path", path, "page", i, "err", err)
			continue
		}
		if err := fn(text); err != nil {
			return err
		}
	}
	return nil
}
