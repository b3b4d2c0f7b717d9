package rag

import (
	"fmt"
	"strings"
)

// postprocessAnswer appends short provenance previews when the generated
// answer signals that the information was not found. This shows the caller
// what was actually retrieved without re-querying the index. Answers without
// the marker pass through unchanged.
func postprocessAnswer(answer string, sources []Source) string {
	if !strings.Contains(strings.ToLower(answer), notFoundMarker) {
		return answer
	}
	if len(sources) == 0 {
		return answer
	}

	top := sources
	if len(top) > maxAnswerSnippets {
		top = top[:maxAnswerSnippets]
	}

	previews := make([]string, 0, len(top))
	for _, s := range top {
		text := strings.ReplaceAll(truncate(s.Text, snippetPreviewLimit), "\n", " ")
		previews = append(previews, fmt.Sprintf("[source=%s page=%s chunk=%s] %s",
			s.SourceFile, intOrPlaceholder(s.PageNo), intOrPlaceholder(s.ChunkIndex), text))
	}

	return answer + "\n\nTop retrieved snippets:\n" + strings.Join(previews, "\n")
}
