package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"courseqa/internal/corpus"
	"courseqa/internal/domain"
)

type fakeEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

type fakeChat struct {
	answer     string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeChat) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func testStore(t *testing.T) *corpus.Store {
	t.Helper()
	store, err := corpus.New([]domain.Segment{
		{VideoNumber: 1, VideoTitle: "HTML", Start: 0, End: 30, Text: "opening tags", Embedding: []float64{1, 0}},
		{VideoNumber: 2, VideoTitle: "CSS", Start: 5, End: 60, Text: "cascading styles", Embedding: []float64{0, 1}},
	})
	if err != nil {
		t.Fatalf("corpus.New() error: %v", err)
	}
	return store
}

func TestAsk_HappyPath(t *testing.T) {
	emb := &fakeEmbedder{vector: []float64{1, 0}}
	chat := &fakeChat{answer: "see video 1 at the start"}
	svc := NewAskService(testStore(t), emb, chat, 5)

	got, err := svc.Ask(context.Background(), "where are tags taught?")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if got != "see video 1 at the start" {
		t.Errorf("Ask() = %q, want the chat answer", got)
	}
	if emb.calls != 1 || chat.calls != 1 {
		t.Errorf("embed calls = %d, chat calls = %d, want 1 and 1", emb.calls, chat.calls)
	}
	if !strings.Contains(chat.lastPrompt, "where are tags taught?") {
		t.Errorf("prompt does not contain the question")
	}
	if !strings.Contains(chat.lastPrompt, "opening tags") || !strings.Contains(chat.lastPrompt, "cascading styles") {
		t.Errorf("prompt does not contain the ranked segment texts")
	}
	// Best match must precede the weaker one in the listing.
	if strings.Index(chat.lastPrompt, "opening tags") > strings.Index(chat.lastPrompt, "cascading styles") {
		t.Errorf("prompt listing is not in ranked order")
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	tests := []string{"", "   ", "\n\t"}
	for _, q := range tests {
		emb := &fakeEmbedder{vector: []float64{1, 0}}
		chat := &fakeChat{answer: "x"}
		svc := NewAskService(testStore(t), emb, chat, 5)

		_, err := svc.Ask(context.Background(), q)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Ask(%q) error = %v, want *domain.ValidationError", q, err)
		}
		if emb.calls != 0 || chat.calls != 0 {
			t.Errorf("Ask(%q) contacted remote services: embed=%d chat=%d", q, emb.calls, chat.calls)
		}
	}
}

func TestAsk_EmbeddingFailureSkipsSynthesis(t *testing.T) {
	emb := &fakeEmbedder{err: &domain.EmbeddingError{Err: errors.New("timeout")}}
	chat := &fakeChat{answer: "x"}
	svc := NewAskService(testStore(t), emb, chat, 5)

	_, err := svc.Ask(context.Background(), "q")
	var ee *domain.EmbeddingError
	if !errors.As(err, &ee) {
		t.Fatalf("Ask() error = %v, want *domain.EmbeddingError", err)
	}
	if chat.calls != 0 {
		t.Errorf("synthesis was attempted after an embedding failure")
	}
}

func TestAsk_WrongDimensionEmbedding(t *testing.T) {
	// The test corpus is 2-dimensional; a provider answering with a
	// different width (say after an upstream model swap) must fail the
	// request rather than rank on truncated vectors.
	emb := &fakeEmbedder{vector: []float64{0.1, 0.2, 0.3, 0.4, 0.5}}
	chat := &fakeChat{answer: "x"}
	svc := NewAskService(testStore(t), emb, chat, 5)

	_, err := svc.Ask(context.Background(), "q")
	var ee *domain.EmbeddingError
	if !errors.As(err, &ee) {
		t.Fatalf("Ask() error = %v, want *domain.EmbeddingError", err)
	}
	if chat.calls != 0 {
		t.Errorf("synthesis was attempted with a mismatched query embedding")
	}
}

func TestAsk_UntypedEmbedderErrorWrapped(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("plain failure")}
	svc := NewAskService(testStore(t), emb, &fakeChat{}, 5)

	_, err := svc.Ask(context.Background(), "q")
	var ee *domain.EmbeddingError
	if !errors.As(err, &ee) {
		t.Fatalf("Ask() error = %v, want *domain.EmbeddingError", err)
	}
}

func TestAsk_SynthesisFailure(t *testing.T) {
	emb := &fakeEmbedder{vector: []float64{1, 0}}
	chat := &fakeChat{err: &domain.SynthesisError{Err: errors.New("timeout")}}
	svc := NewAskService(testStore(t), emb, chat, 5)

	_, err := svc.Ask(context.Background(), "q")
	var se *domain.SynthesisError
	if !errors.As(err, &se) {
		t.Fatalf("Ask() error = %v, want *domain.SynthesisError", err)
	}
}

func TestAsk_RepeatedQuestionSamePrompt(t *testing.T) {
	emb := &fakeEmbedder{vector: []float64{0.7, 0.3}}
	chat := &fakeChat{answer: "a"}
	svc := NewAskService(testStore(t), emb, chat, 5)

	if _, err := svc.Ask(context.Background(), "same question"); err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	first := chat.lastPrompt
	if _, err := svc.Ask(context.Background(), "same question"); err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if chat.lastPrompt != first {
		t.Errorf("repeated question produced a different prompt")
	}
}

type panicEmbedder struct{}

func (panicEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	panic("boom")
}

func TestAsk_PanicBecomesInternalError(t *testing.T) {
	svc := NewAskService(testStore(t), panicEmbedder{}, &fakeChat{}, 5)
	_, err := svc.Ask(context.Background(), "q")
	var ie *domain.InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("Ask() error = %v, want *domain.InternalError", err)
	}
	if !strings.Contains(ie.Diag, "boom") {
		t.Errorf("diagnostic message %q does not carry the panic value", ie.Diag)
	}
}
