package rag

import "fmt"

// diversityNote inspects the final chunk list for severe single-source
// imbalance on multi-topic questions. It applies only when the question was
// multi-concept and more than 4 chunks were ranked, and it never reorders
// anything: the result is one advisory note, embedded in the context for the
// generation step to read, naming the first source whose share of the final
// context falls below the threshold. Returns "" when balance is acceptable.
func diversityNote(chunks []Chunk, multiConcept bool, rankedCount int) string {
	if !multiConcept || rankedCount <= 4 || len(chunks) == 0 {
		return ""
	}

	counts := make(map[string]int)
	var order []string
	for _, chunk := range chunks {
		src := chunk.SourceFile
		if src == "" {
			src = "unknown"
		}
		if _, ok := counts[src]; !ok {
			order = append(order, src)
		}
		counts[src]++
	}
	if len(counts) < 2 {
		return ""
	}

	total := float64(len(chunks))
	for _, src := range order {
		if float64(counts[src])/total < diversityShareThreshold {
			return fmt.Sprintf("\n\n[IMPORTANT NOTE: The '%s' is under-represented in the retrieved context. "+
				"Please ensure you also consider and reference information from this document when it is "+
				"relevant to answering the query.]\n", src)
		}
	}
	return ""
}
