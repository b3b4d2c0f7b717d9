package rag

import "strings"

// conceptSet is a set of normalized, meaningful tokens extracted from text.
type conceptSet map[string]struct{}

// extractConcepts tokenizes text for lexical overlap matching: lowercase,
// whitespace-split, keep purely alphabetic tokens longer than minLen, and
// optionally drop stopwords. The same rule applies to questions and chunks so
// overlap is symmetric.
func extractConcepts(text string, minLen int, dropStopwords bool) conceptSet {
	concepts := make(conceptSet)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) <= minLen || !isAlphabetic(word) {
			continue
		}
		if dropStopwords {
			if _, stop := conceptStopwords[word]; stop {
				continue
			}
		}
		concepts[word] = struct{}{}
	}
	return concepts
}

// questionConcepts extracts the concept set of the original (unexpanded)
// question.
func questionConcepts(question string) conceptSet {
	return extractConcepts(question, 3, true)
}

// chunkMatches reports whether a chunk addresses the question's concepts. An
// empty concept set matches everything; otherwise a single shared concept is
// enough. Ranking, not matching, handles prioritization among matches.
func chunkMatches(text string, concepts conceptSet) bool {
	if len(concepts) == 0 {
		return true
	}
	chunkConcepts := extractConcepts(text, 3, true)
	for c := range concepts {
		if _, ok := chunkConcepts[c]; ok {
			return true
		}
	}
	return false
}

// matchChunks filters candidates to those sharing at least one concept with
// the question, preserving retrieval order. If nothing matches, the entire
// candidate set is returned so the working set is never empty.
func matchChunks(chunks []Chunk, concepts conceptSet) []Chunk {
	matched := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunkMatches(chunk.Text, concepts) {
			matched = append(matched, chunk)
		}
	}
	if len(matched) == 0 {
		return chunks
	}
	return matched
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}
