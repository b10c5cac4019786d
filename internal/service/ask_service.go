// Package service orchestrates the question-answer pipeline: validate,
// embed, rank, compose, synthesize.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"courseqa/internal/corpus"
	"courseqa/internal/domain"
	"courseqa/internal/prompt"
	"courseqa/internal/rank"
)

// AskServiceImpl answers course questions against a fixed corpus.
type AskServiceImpl struct {
	store    *corpus.Store
	embedder domain.Embedder
	chat     domain.ChatCompleter
	topK     int
}

// NewAskService wires the pipeline. The corpus store must already be loaded.
func NewAskService(store *corpus.Store, embedder domain.Embedder, chat domain.ChatCompleter, topK int) *AskServiceImpl {
	if topK <= 0 {
		topK = 5
	}
	return &AskServiceImpl{store: store, embedder: embedder, chat: chat, topK: topK}
}

// Ask embeds the question, ranks it against the corpus, composes the
// guidance prompt and synthesizes an answer. Every failure is one of the
// typed stage errors; nothing propagates unhandled.
func (s *AskServiceImpl) Ask(ctx context.Context, question string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			answer = ""
			err = &domain.InternalError{Diag: fmt.Sprintf("ask pipeline panic: %v", r)}
		}
	}()

	if strings.TrimSpace(question) == "" {
		return "", &domain.ValidationError{Reason: "no question provided"}
	}

	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", asEmbeddingError(err)
	}
	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return "", &domain.EmbeddingError{Err: fmt.Errorf("expected 1 vector, got %d", len(vectors))}
	}
	if len(vectors[0]) != s.store.Dimension() {
		return "", &domain.EmbeddingError{
			Err: fmt.Errorf("query embedding has %d dimensions, corpus has %d", len(vectors[0]), s.store.Dimension()),
		}
	}

	matches := rank.TopK(vectors[0], s.store.Segments(), s.topK)

	p, err := prompt.Compose(question, matches)
	if err != nil {
		return "", &domain.InternalError{Diag: err.Error()}
	}

	text, err := s.chat.Complete(ctx, p)
	if err != nil {
		return "", asSynthesisError(err)
	}
	return text, nil
}

func asEmbeddingError(err error) error {
	var ee *domain.EmbeddingError
	if errors.As(err, &ee) {
		return err
	}
	return &domain.EmbeddingError{Err: err}
}

func asSynthesisError(err error) error {
	var se *domain.SynthesisError
	if errors.As(err, &se) {
		return err
	}
	return &domain.SynthesisError{Err: err}
}
