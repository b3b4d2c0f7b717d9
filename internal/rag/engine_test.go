package rag_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"policyqa/internal/rag"
	"policyqa/internal/rag/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testChunks() []rag.Chunk {
	page := 1
	idx0, idx1 := 0, 1
	return []rag.Chunk{
		{
			Text:       "The probation period is six months from the date of joining for all employees hired into full time roles.",
			SourceFile: "probation_policy.pdf",
			PageNo:     &page,
			ChunkIndex: &idx0,
		},
		{
			Text:       "During probation the notice period is 30 days; after confirmation it extends to 60 days per the separation policy.",
			SourceFile: "separation_policy.pdf",
			PageNo:     &page,
			ChunkIndex: &idx1,
		},
	}
}

func TestEngineAskEndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	index.EXPECT().
		Search(gomock.Any(), gomock.Any(), 4).
		Return(testChunks(), nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), "What is the probation duration?", gomock.Any()).
		DoAndReturn(func(_ context.Context, contextText, _ string, _ any) (string, error) {
			if !strings.Contains(contextText, "[SOURCE: probation_policy.pdf | page: 1 | chunk: 0]") {
				t.Fatalf("context missing provenance header:\n%s", contextText)
			}
			return "The probation period is six months.", nil
		})

	engine := rag.NewEngine(index, generator, rag.DefaultOptions())
	resp, err := engine.Ask(context.Background(), rag.AskRequest{Question: "What is the probation duration?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Answer != "The probation period is six months." {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	if resp.RetrievedChunks != len(resp.Sources) {
		t.Fatalf("RetrievedChunks (%d) must equal len(Sources) (%d)", resp.RetrievedChunks, len(resp.Sources))
	}
	if len(resp.Sources) == 0 || resp.Sources[0].SourceFile != "probation_policy.pdf" {
		t.Fatalf("unexpected sources: %v", resp.Sources)
	}
}

func TestEngineAskDeterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	var contexts []string
	// "notice" + "period" marks the question multi-concept.
	index.EXPECT().CountDocuments(gomock.Any()).Return(2, nil).Times(2)
	index.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(testChunks(), nil).
		Times(2)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contextText, _ string, _ any) (string, error) {
			contexts = append(contexts, contextText)
			return "answer", nil
		}).
		Times(2)

	engine := rag.NewEngine(index, generator, rag.DefaultOptions())
	req := rag.AskRequest{
		Question: "What is the notice period during probation?",
		History: []rag.ConversationTurn{
			{Role: "user", Content: "Hello"},
			{Role: "assistant", Content: "Hi, how can I help?"},
		},
	}

	first, err := engine.Ask(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Ask(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contexts[0] != contexts[1] {
		t.Fatal("assembled context must be byte-identical across runs")
	}
	if first.Answer != second.Answer || len(first.Sources) != len(second.Sources) {
		t.Fatal("pipeline output must be deterministic")
	}
	for i := range first.Sources {
		if first.Sources[i].SourceFile != second.Sources[i].SourceFile ||
			first.Sources[i].Text != second.Sources[i].Text {
			t.Fatalf("source %d differs across runs", i)
		}
	}
}

func TestEngineAskMultiConceptSizing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	index.EXPECT().CountDocuments(gomock.Any()).Return(4, nil)
	// Both "holiday" and "leave" present: k = max(4*5, 4*3) = 20.
	index.EXPECT().Search(gomock.Any(), gomock.Any(), 20).Return(testChunks(), nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("answer", nil)

	engine := rag.NewEngine(index, generator, rag.DefaultOptions())
	if _, err := engine.Ask(context.Background(), rag.AskRequest{
		Question: "Do holidays count against my leave balance?",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEngineAskEmptyQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := rag.NewEngine(mocks.NewMockIndex(ctrl), mocks.NewMockGenerator(ctrl), rag.DefaultOptions())
	if _, err := engine.Ask(context.Background(), rag.AskRequest{Question: "   "}); err == nil {
		t.Fatal("expected error for blank question")
	}
}

func TestEngineAskNoResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	index.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	engine := rag.NewEngine(index, mocks.NewMockGenerator(ctrl), rag.DefaultOptions())
	resp, err := engine.Ask(context.Background(), rag.AskRequest{Question: "What is the dress code?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.RetrievedChunks != 0 || len(resp.Sources) != 0 {
		t.Fatalf("expected empty result, got %+v", resp)
	}
	if resp.Answer == "" {
		t.Fatal("expected a fallback answer")
	}
}

func TestEngineAskSearchErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	index.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("index down"))

	engine := rag.NewEngine(index, mocks.NewMockGenerator(ctrl), rag.DefaultOptions())
	if _, err := engine.Ask(context.Background(), rag.AskRequest{Question: "Anything"}); err == nil {
		t.Fatal("expected search error to propagate")
	}
}

func TestEngineAskGenerateErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	index.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(testChunks(), nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("llm down"))

	engine := rag.NewEngine(index, generator, rag.DefaultOptions())
	if _, err := engine.Ask(context.Background(), rag.AskRequest{Question: "Anything"}); err == nil {
		t.Fatal("expected generation error to propagate")
	}
}

func TestEngineAskNotFoundAppendsSnippets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndex(ctrl)
	generator := mocks.NewMockGenerator(ctrl)
	index.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(testChunks(), nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("I couldn't find that in the documents.", nil)

	engine := rag.NewEngine(index, generator, rag.DefaultOptions())
	resp, err := engine.Ask(context.Background(), rag.AskRequest{Question: "What is the parking policy?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Answer, "Top retrieved snippets:") {
		t.Fatalf("expected snippet section appended, got %q", resp.Answer)
	}
}
