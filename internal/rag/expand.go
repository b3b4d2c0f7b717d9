package rag

import (
	"fmt"
	"strings"
)

// expandedQuery is the result of query expansion. Query feeds the vector
// search only; concept extraction and scoring always use the original
// question.
type expandedQuery struct {
	Query string
	// DocListing is set when the question asks which documents or policies
	// are available. It widens retrieval and injects the document inventory
	// into the assembled context.
	DocListing bool
}

// expandQuery augments the raw question with auxiliary retrieval keywords
// based on detected intent patterns. Each detector appends its suffix to the
// already-expanded query, in fixed priority order, so independent triggers
// accumulate rather than overwrite one another.
func expandQuery(question string, opts Options) expandedQuery {
	lower := strings.ToLower(question)
	query := question

	if containsAny(lower, joinIndicators) &&
		containsAny(lower, resignIndicators) &&
		!strings.Contains(lower, "probation") {
		query += " probation period duration"
	}

	if containsAny(lower, holidayQueryIndicators) && !strings.Contains(lower, "calendar") {
		query += fmt.Sprintf(" Holiday Calendar %s %s mandatory optional", opts.CalendarYear, opts.OfficeLocation)
	}

	docListing := containsAny(lower, docListingIndicators)
	if docListing {
		query += docListingExpansion
	}

	return expandedQuery{Query: query, DocListing: docListing}
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
