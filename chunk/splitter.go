// Copyright 2025 Voicetask Labs
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


package chunk

import "strings"

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the number of trailing characters of a chunk
	// carried into the start of the next chunk.
	DefaultChunkOverlap = 300
)

// DefaultSeparators is the boundary priority list. Earlier entries are
// preferred split points; later entries are only consulted for pieces
// that still exceed the chunk size.
var DefaultSeparators = []string{"\n", " ", "?", ".", "!"}

// Splitter splits text into bounded, overlapping chunks at semantic
// separator boundaries. A Splitter is stateless and safe for concurrent use.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the maximum chunk length in characters.
// Values below 1 fall back to DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap carried between adjacent chunks.
// Negative values fall back to DefaultChunkOverlap.
func WithChunkOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.chunkOverlap = overlap
	}
}

// WithSeparators replaces the boundary priority list.
// An empty list means every input is emitted as a single chunk.
func WithSeparators(separators []string) Option {
	return func(s *Splitter) {
		s.separators = separators
	}
}

// NewSplitter creates a Splitter with the default size, overlap, and
// separator priority list, then applies the provided options. The overlap
// is clamped below the chunk size so a chunk is never pure carry-over.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		separators:   DefaultSeparators,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chunkSize < 1 {
		s.chunkSize = DefaultChunkSize
	}
	if s.chunkOverlap < 0 {
		s.chunkOverlap = DefaultChunkOverlap
	}
	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize - 1
	}
	return s
}

// Split splits text using the default configuration (size 1000, overlap 300).
func Split(text string) []string {
	return NewSplitter().Split(text)
}

// Split splits text into chunks of at most the configured size, preferring
// boundaries from the separator priority list. Adjacent chunks overlap by up
// to the configured number of characters, taken from the tail of the
// previous chunk. A piece that no separator can shrink is emitted as-is,
// even when it exceeds the size limit.
//
// The result is deterministic: identical input and configuration always
// produce the identical sequence. No characters are normalized, invented,
// or dropped; concatenating the chunks with their overlap prefixes removed
// reproduces the input exactly.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.merge(s.pieces(text, s.separators))
}

// pieces breaks text into ordered fragments, each within the chunk size
// unless no separator can shrink it further. Recursion runs over the
// separator priority list, never over the text itself, so its depth is
// bounded by len(separators).
func (s *Splitter) pieces(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		// No boundary left to try: emit the oversized piece as-is.
		return []string{text}
	}

	sep := separators[0]
	if !strings.Contains(text, sep) {
		// Separator absent; fall through to the next one in priority order.
		return s.pieces(text, separators[1:])
	}

	parts := strings.SplitAfter(text, sep)
	// SplitAfter yields a trailing empty part when text ends with sep.
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) <= s.chunkSize {
			out = append(out, part)
			continue
		}
		// SplitAfter keeps the separator attached to the text before it,
		// which can hold a part just past the limit even though the later
		// separators never occur in it. Detach the separator, shrink the
		// prefix with the remaining separators, and emit the separator as
		// its own fragment so concatenation order is unchanged.
		if head, ok := strings.CutSuffix(part, sep); ok {
			out = append(out, s.pieces(head, separators[1:])...)
			out = append(out, sep)
			continue
		}
		out = append(out, s.pieces(part, separators[1:])...)
	}
	return out
}

// merge packs fragments into chunks up to the size limit, carrying up to
// chunkOverlap trailing characters of each emitted chunk into the next.
// The carry shrinks when a fragment would not otherwise fit; it never
// pushes a chunk past the size limit on its own.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var cur strings.Builder
	packed := false // cur holds at least one fragment beyond the carry

	flush := func() string {
		chunk := cur.String()
		chunks = append(chunks, chunk)
		cur.Reset()
		packed = false
		return chunk
	}

	carryFrom := func(chunk string, budget int) {
		carry := s.chunkOverlap
		if carry > budget {
			carry = budget
		}
		if carry > len(chunk) {
			carry = len(chunk)
		}
		if carry > 0 {
			cur.WriteString(chunk[len(chunk)-carry:])
		}
	}

	for _, piece := range pieces {
		if len(piece) > s.chunkSize {
			// Unbreakable oversized fragment: emit verbatim on its own.
			if packed {
				flush()
			}
			cur.Reset()
			chunks = append(chunks, piece)
			carryFrom(piece, s.chunkOverlap)
			continue
		}

		if cur.Len()+len(piece) > s.chunkSize {
			if packed {
				prev := flush()
				carryFrom(prev, s.chunkSize-len(piece))
			} else {
				// Only carry-over present; shrink it to make room.
				carry := cur.String()
				cur.Reset()
				keep := s.chunkSize - len(piece)
				if keep > 0 {
					cur.WriteString(carry[len(carry)-keep:])
				}
			}
		}
		cur.WriteString(piece)
		packed = true
	}

	if packed {
		flush()
	}
	return chunks
}
