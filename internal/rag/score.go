package rag

import (
	"sort"
	"strings"
)

// ScoreWeights holds the additive weights of the completeness score. Keeping
// them in one structure lets tests perturb individual weights and verify the
// ranking properties hold across the perturbed sets.
type ScoreWeights struct {
	// TableWithColumns applies when header lines and table-column keywords
	// are both present; TableHeaders applies when only headers are.
	TableWithColumns float64
	TableHeaders     float64

	// Numbered-entry tiers: >5, >2, >0 entries.
	ManyEntries float64
	SomeEntries float64
	FewEntries  float64

	// Data-row tiers: >5, >2 digit-dense lines.
	ManyDataRows float64
	SomeDataRows float64

	// Content-length tiers: >400, >200 characters.
	LongContent   float64
	MediumContent float64

	// OverlapCap bounds the concept-overlap bonus.
	OverlapCap float64

	// Domain-signal boost for calendar-style questions: with and without
	// table columns in the chunk.
	DomainTableBoost float64
	DomainTextBoost  float64
}

// DefaultScoreWeights returns the production weight set.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TableWithColumns: 50,
		TableHeaders:     30,
		ManyEntries:      25,
		SomeEntries:      15,
		FewEntries:       8,
		ManyDataRows:     15,
		SomeDataRows:     8,
		LongContent:      10,
		MediumContent:    5,
		OverlapCap:       8,
		DomainTableBoost: 40,
		DomainTextBoost:  25,
	}
}

// StructureProfile holds per-chunk structural metrics, computed fresh for
// each scoring call.
type StructureProfile struct {
	NonEmptyLines   int
	NumberedEntries int
	HeaderLines     int
	NumericLines    int
	DataRows        int
	HasTableColumns bool
}

// analyzeStructure derives structural metrics from chunk text. A numbered
// entry starts with a standalone run of digits; a header line is longer than
// 3 characters with over half its letters uppercase; a data row carries more
// than 3 digit characters.
func analyzeStructure(text string) StructureProfile {
	var profile StructureProfile

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		profile.NonEmptyLines++

		if fields := strings.Fields(stripped); len(fields) > 0 && isDigits(fields[0]) {
			profile.NumberedEntries++
		}

		if len(stripped) > 3 && uppercaseRatio(stripped) > 0.5 {
			profile.HeaderLines++
		}

		if digits := countDigits(stripped); digits > 0 {
			profile.NumericLines++
			if digits > 3 {
				profile.DataRows++
			}
		}
	}

	for _, kw := range tableColumnKeywords {
		if strings.Contains(text, kw) {
			profile.HasTableColumns = true
			break
		}
	}

	return profile
}

// scoreCompleteness computes the deterministic structural-quality score of a
// chunk relative to the question's concepts. The score is total: any input,
// including empty text, resolves to its baseline contributions.
func scoreCompleteness(text string, concepts conceptSet, w ScoreWeights) float64 {
	profile := analyzeStructure(text)

	var score float64

	// Complete table structure ranks above bare headers.
	switch {
	case profile.HeaderLines > 0 && profile.HasTableColumns:
		score += w.TableWithColumns
	case profile.HeaderLines > 0:
		score += w.TableHeaders
	}

	switch {
	case profile.NumberedEntries > 5:
		score += w.ManyEntries
	case profile.NumberedEntries > 2:
		score += w.SomeEntries
	case profile.NumberedEntries > 0:
		score += w.FewEntries
	}

	switch {
	case profile.DataRows > 5:
		score += w.ManyDataRows
	case profile.DataRows > 2:
		score += w.SomeDataRows
	}

	switch {
	case len(text) > 400:
		score += w.LongContent
	case len(text) > 200:
		score += w.MediumContent
	}

	// Concept-overlap bonus. Chunk tokens here use a longer minimum length
	// than matching does, without stopword removal.
	chunkWords := extractConcepts(text, 4, false)
	var overlap float64
	for c := range concepts {
		if _, ok := chunkWords[c]; ok {
			overlap++
		}
	}
	if overlap > w.OverlapCap {
		overlap = w.OverlapCap
	}
	score += overlap

	if hasCalendarSignals(concepts) {
		textLower := strings.ToLower(text)
		if containsAny(textLower, monthNames) || containsAny(textLower, weekdayNames) ||
			strings.Contains(textLower, "mandate") || strings.Contains(textLower, "optional") {
			if profile.HasTableColumns {
				score += w.DomainTableBoost
			} else {
				score += w.DomainTextBoost
			}
		}
	}

	return score
}

// hasCalendarSignals reports whether the question's concepts mention a month
// or holiday classification vocabulary.
func hasCalendarSignals(concepts conceptSet) bool {
	signals := append([]string{"holiday", "mandate", "optional"}, monthNames...)
	for c := range concepts {
		for _, signal := range signals {
			if strings.Contains(c, signal) {
				return true
			}
		}
	}
	return false
}

// rankChunks scores the matching chunks and orders them by score descending.
// The sort is stable: ties keep their original retrieval order.
func rankChunks(chunks []Chunk, concepts conceptSet, w ScoreWeights) []ScoredChunk {
	ranked := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		ranked = append(ranked, ScoredChunk{
			Chunk: chunk,
			Score: scoreCompleteness(chunk.Text, concepts, w),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
