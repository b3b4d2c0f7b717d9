package rag

import (
	"context"
	"fmt"
	"strings"
)

// isMultiConcept reports whether the question spans multiple policy areas,
// judged by the joint presence of any configured keyword pair.
func isMultiConcept(question string) bool {
	lower := strings.ToLower(question)
	for _, pair := range multiConceptPairs {
		if strings.Contains(lower, pair[0]) && strings.Contains(lower, pair[1]) {
			return true
		}
	}
	return false
}

// retrievalK computes how many candidate chunks to request from the vector
// search. Multi-concept questions widen retrieval to cover every source
// document; document-listing questions are evaluated afterwards and win only
// when they yield a larger k.
func retrievalK(ctx context.Context, index Index, question string, baseK int, docListing bool) (int, bool, error) {
	k := baseK
	multi := isMultiConcept(question)

	var numDocs int
	if multi || docListing {
		n, err := index.CountDocuments(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to count documents: %w", err)
		}
		numDocs = n
	}

	if multi {
		k = max(baseK*5, numDocs*3)
	}
	if docListing {
		k = max(k, numDocs*2)
	}

	return k, multi, nil
}
