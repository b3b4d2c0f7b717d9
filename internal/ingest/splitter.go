package ingest

import "strings"

// Default chunking parameters for policy documents.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

// Splitter splits document text into overlapping chunks. It prefers to break
// at paragraph boundaries, then lines, then sentences, then words, falling
// back to fixed-size windows only when nothing else fits.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewSplitter creates a splitter with the given chunk size and overlap.
// Non-positive values fall back to the defaults.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap <= 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   []string{"\n\n\n", "\n\n", "\n", ". ", " ", ""},
	}
}

// Split splits text into chunks of at most the configured size.
func (s *Splitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	// Pick the first separator that actually occurs in the text.
	separator := ""
	var remaining []string
	for i, sep := range separators {
		if sep == "" {
			separator = ""
			remaining = nil
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	if separator == "" {
		return windowSplit(text, s.chunkSize, s.chunkOverlap)
	}

	parts := strings.Split(text, separator)

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(current, separator))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, part := range parts {
		if part == "" {
			continue
		}

		// A single part too large for one chunk is split with the
		// finer-grained separators.
		if len(part) > s.chunkSize {
			flush()
			current = nil
			currentLen = 0
			chunks = append(chunks, s.split(part, remaining)...)
			continue
		}

		pieceLen := len(part) + len(separator)
		if currentLen+pieceLen > s.chunkSize && len(current) > 0 {
			flush()
			// Retain a tail of parts as overlap for the next chunk.
			for currentLen > s.chunkOverlap && len(current) > 0 {
				currentLen -= len(current[0]) + len(separator)
				current = current[1:]
			}
		}

		current = append(current, part)
		currentLen += pieceLen
	}
	flush()

	return chunks
}

// windowSplit slices text into fixed-size windows with overlap. Last resort
// for text with no usable separators.
func windowSplit(text string, size, overlap int) []string {
	step := size - overlap
	if step <= 0 {
		step = size
	}

	var out []string
	for start := 0; start < len(text); start += step {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}
