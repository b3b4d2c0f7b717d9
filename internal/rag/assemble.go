package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// assembledContext is the context bundle handed to generation: the full
// context text plus the parallel citation list. Sources[i] corresponds to the
// i-th chunk block in Text.
type assembledContext struct {
	Text    string
	Sources []Source
}

// assembleContext builds the final prompt context from the surviving chunks,
// in order: optional document-inventory note, chunk blocks with provenance
// headers, diversity note, all prefixed by the conversation-history block
// when history is present.
func assembleContext(ctx context.Context, index Index, chunks []Chunk, docListing bool, note string, history []ConversationTurn) (assembledContext, error) {
	var inventory string
	if docListing {
		// The inventory is independent of which chunks survived filtering:
		// listing questions must see every document the index knows about.
		docs, err := index.ListDocuments(ctx)
		if err != nil {
			return assembledContext{}, fmt.Errorf("failed to list documents: %w", err)
		}
		sorted := make([]string, len(docs))
		copy(sorted, docs)
		sort.Strings(sorted)
		inventory = "[SYSTEM NOTE: Complete list of available documents in knowledge base: " +
			strings.Join(sorted, ", ") + "]\n\n"
	}

	blocks := make([]string, 0, len(chunks))
	sources := make([]Source, 0, len(chunks))
	for _, chunk := range chunks {
		blocks = append(blocks, provenanceHeader(chunk)+"\n"+chunk.Text)
		sources = append(sources, Source{
			SourceFile: sourceFileOrUnknown(chunk),
			PageNo:     chunk.PageNo,
			ChunkIndex: chunk.ChunkIndex,
			Text:       truncate(chunk.Text, sourcePreviewLimit),
		})
	}

	text := inventory + strings.Join(blocks, blockSeparator) + note

	if historyBlock := formatHistory(history); historyBlock != "" {
		text = historyBlock + text
	}

	return assembledContext{Text: text, Sources: sources}, nil
}

// provenanceHeader renders the block header identifying a chunk's origin.
// Missing metadata falls back to placeholders rather than failing assembly.
func provenanceHeader(chunk Chunk) string {
	return fmt.Sprintf("[SOURCE: %s | page: %s | chunk: %s]",
		sourceFileOrUnknown(chunk), intOrPlaceholder(chunk.PageNo), intOrPlaceholder(chunk.ChunkIndex))
}

func sourceFileOrUnknown(chunk Chunk) string {
	if chunk.SourceFile == "" {
		return "unknown"
	}
	return chunk.SourceFile
}

func intOrPlaceholder(n *int) string {
	if n == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *n)
}

// formatHistory renders the trailing conversation turns as alternating
// User/Assistant lines wrapped in explicit markers, or "" when there is no
// history. Turns with unrecognized roles are skipped.
func formatHistory(history []ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	var b strings.Builder
	b.WriteString(historyHeader)
	for _, turn := range history {
		switch turn.Role {
		case "user":
			fmt.Fprintf(&b, "User: %s\n", turn.Content)
		case "assistant":
			fmt.Fprintf(&b, "Assistant: %s\n", turn.Content)
		}
	}
	b.WriteString(historyFooter)
	return b.String()
}
