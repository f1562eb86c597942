// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package chunk segments document text into overlapping word windows.
//
// Two entry points produce identical windows: Split consumes pre-extracted
// text in one call, and Splitter accumulates words incrementally as a
// format-specific reader delivers lines, pages or paragraphs.
//
// For W words, window size C and overlap O, the step is S = max(1, C-O) and
// both paths yield exactly ceil(W/S) non-empty windows, each at most C words,
// with consecutive windows overlapping by exactly O words except in the tail.
package chunk

import "strings"

const (
	// DefaultSize is the default window size in words.
	DefaultSize = 2000
	// DefaultOverlap is the default number of words shared by consecutive windows.
	DefaultOverlap = 200
)

// Options configures a word-window chunker.
type Options struct {
	Size    int // Words per window
	Overlap int // Words shared between consecutive windows
}

// DefaultOptions returns the default chunking configuration.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Overlap: DefaultOverlap}
}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Overlap < 0 {
		o.Overlap = 0
	}
	return o
}

// step is the window advance. Never below 1, even when overlap >= size.
func (o Options) step() int {
	s := o.Size - o.Overlap
	if s < 1 {
		s = 1
	}
	return s
}

// Split chunks pre-extracted text into overlapping word windows.
// Empty and whitespace-only windows are dropped.
func Split(text string, opt Options) []string {
	opt = opt.normalized()
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := opt.step()
	chunks := make([]string, 0, (len(words)+step-1)/step)
	for i := 0; i < len(words); i += step {
		end := i + opt.Size
		if end > len(words) {
			end = len(words)
		}
		window := strings.Join(words[i:end], " ")
		if strings.TrimSpace(window) == "" {
			continue
		}
		chunks = append(chunks, window)
	}
	return chunks
}

// Splitter accumulates words from incremental input segments and emits
// windows as soon as enough words are buffered. After each full window the
// trailing overlap words are retained, so the emitted windows are exactly
// those Split would produce for the concatenated input.
type Splitter struct {
	opt    Options
	buffer []string
}

// NewSplitter creates a streaming word-window splitter.
func NewSplitter(opt Options) *Splitter {
	return &Splitter{opt: opt.normalized()}
}

// Write adds one input segment (a line, page or paragraph) and returns the
// full windows it completed, in order. Returned windows always hold exactly
// Size words; shorter tail windows are produced by Flush.
func (s *Splitter) Write(segment string) []string {
	s.buffer = append(s.buffer, strings.Fields(segment)...)

	var out []string
	for len(s.buffer) >= s.opt.Size {
		out = append(out, strings.Join(s.buffer[:s.opt.Size], " "))
		s.buffer = s.buffer[s.opt.step():]
	}
	return out
}

// Flush drains the remaining buffer in step-sized windows and resets the
// splitter. Called once at end of input.
func (s *Splitter) Flush() []string {
	var out []string
	step := s.opt.step()
	for off := 0; off < len(s.buffer); off += step {
		end := off + s.opt.Size
		if end > len(s.buffer) {
			end = len(s.buffer)
		}
		window := strings.Join(s.buffer[off:end], " ")
		if strings.TrimSpace(window) != "" {
			out = append(out, window)
		}
	}
	s.buffer = nil
	return out
}
