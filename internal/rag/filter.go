package rag

import "strings"

// looksLikeTitle decides whether a short piece of text is just a header or
// title line. Long page-level chunks often begin with a title and then carry
// useful content, so only chunks up to maxTitleChars are ever classified as
// titles.
func looksLikeTitle(text string, titleKeywords []string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if len(trimmed) > maxTitleChars {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	// Mostly uppercase and only a few words reads as a heading.
	if len(strings.Fields(trimmed)) <= maxTitleWords && uppercaseRatio(trimmed) > titleUppercaseThreshold {
		return true
	}

	// Heavy punctuation with almost no letters.
	if countLetters(trimmed) < minAlphaChars && len(trimmed) < shortChunkLen {
		return true
	}

	return false
}

// isNoiseChunk reports whether a chunk carries no answerable content:
// whitespace, near-empty fragments, or header/title-only text.
func isNoiseChunk(text string, titleKeywords []string) bool {
	if len(strings.TrimSpace(text)) <= minChunkLen {
		return true
	}
	return looksLikeTitle(text, titleKeywords)
}

// filterChunks removes noise chunks and exact duplicates (after whitespace
// normalization) from the ranked chunk list. Chunks are processed in their
// current order; the first occurrence of a normalized text wins and keeps its
// metadata untouched. Chunk indexes are never reassigned here, so citation
// identity survives filtering.
func filterChunks(chunks []Chunk, titleKeywords []string) []Chunk {
	kept := make([]Chunk, 0, len(chunks))
	seen := make(map[string]struct{}, len(chunks))

	for _, chunk := range chunks {
		norm := normalizeText(chunk.Text)
		if _, dup := seen[norm]; dup {
			continue
		}
		if isNoiseChunk(chunk.Text, titleKeywords) {
			continue
		}
		seen[norm] = struct{}{}
		kept = append(kept, chunk)
	}

	return kept
}
