package extract

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/docrag/core"
)

// txtSegments reads a plain-text file line by line.
func txtSegments(path string, fn SegmentFunc) error {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("txt extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: txt", core.ErrExtractionFailed)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Long lines are common in machine-generated text files.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("txt extraction error", "path", path, "err", err)
		return fmt.Errorf("%w: txt", core.ErrExtractionFailed)
	}
	return nil
}
