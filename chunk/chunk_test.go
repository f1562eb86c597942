package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSplitWindowCount(t *testing.T) {
	tests := []struct {
		name    string
		words   int
		size    int
		overlap int
	}{
		{"empty", 0, 4, 2},
		{"single short window", 3, 4, 2},
		{"exact window", 4, 4, 2},
		{"overlapping windows", 10, 4, 2},
		{"odd word count", 9, 4, 2},
		{"no overlap", 8, 4, 0},
		{"overlap equals size", 5, 3, 3},
		{"overlap exceeds size", 5, 3, 7},
		{"default config shape", 4100, 2000, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := Options{Size: tt.size, Overlap: tt.overlap}
			chunks := Split(words(tt.words), opt)

			step := tt.size - tt.overlap
			if step < 1 {
				step = 1
			}
			want := (tt.words + step - 1) / step // ceil(W/S)
			assert.Len(t, chunks, want)

			for _, c := range chunks {
				assert.LessOrEqual(t, len(strings.Fields(c)), tt.size)
				assert.NotEqual(t, "", strings.TrimSpace(c))
			}
		})
	}
}

func TestSplitOverlapExact(t *testing.T) {
	chunks := Split(words(10), Options{Size: 4, Overlap: 2})
	require.GreaterOrEqual(t, len(chunks), 2)

	// Consecutive full windows share exactly the overlap words.
	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	assert.Equal(t, first[2:], second[:2])
}

func TestSplitWhitespaceOnly(t *testing.T) {
	assert.Nil(t, Split("   \n\t  ", DefaultOptions()))
	assert.Nil(t, Split("", DefaultOptions()))
}

func TestSplitFirstWindowContent(t *testing.T) {
	chunks := Split("a b c d e f", Options{Size: 4, Overlap: 1})
	require.NotEmpty(t, chunks)
	assert.Equal(t, "a b c d", chunks[0])
	assert.Equal(t, "d e f", chunks[1])
}

// The streaming splitter must produce the same windows as Split regardless
// of how the input is segmented.
func TestSplitterMatchesSplit(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		size     int
		overlap  int
		segWords int // words per segment fed to the splitter
	}{
		{"line sized segments", 100, 10, 3, 7},
		{"one word at a time", 37, 8, 2, 1},
		{"segments larger than window", 50, 6, 2, 25},
		{"single segment", 23, 5, 1, 23},
		{"tail only", 4, 10, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := Options{Size: tt.size, Overlap: tt.overlap}
			text := words(tt.words)
			want := Split(text, opt)

			s := NewSplitter(opt)
			var got []string
			all := strings.Fields(text)
			for off := 0; off < len(all); off += tt.segWords {
				end := off + tt.segWords
				if end > len(all) {
					end = len(all)
				}
				got = append(got, s.Write(strings.Join(all[off:end], " "))...)
			}
			got = append(got, s.Flush()...)

			assert.Equal(t, want, got)
		})
	}
}

func TestSplitterFlushResets(t *testing.T) {
	s := NewSplitter(Options{Size: 4, Overlap: 2})
	s.Write("a b c")
	require.NotEmpty(t, s.Flush())
	assert.Empty(t, s.Flush())
}

func TestSplitterEmptySegments(t *testing.T) {
	s := NewSplitter(Options{Size: 3, Overlap: 1})
	assert.Empty(t, s.Write(""))
	assert.Empty(t, s.Write("   \n"))
	assert.Empty(t, s.Flush())
}
