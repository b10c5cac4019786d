package domain

import "context"

// Segment is a timestamped slice of course transcript text with a
// precomputed embedding. Segments are immutable after corpus load.
type Segment struct {
	VideoNumber int
	VideoTitle  string
	Start       float64
	End         float64
	Text        string
	Embedding   []float64
}

// RankedSegment pairs a corpus segment with its similarity score for a query.
type RankedSegment struct {
	Segment *Segment
	Score   float64
}

// Embedder converts one or more texts into embedding vectors.
// Results are order-preserving: vector i corresponds to texts[i].
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// ChatCompleter sends a prompt to a chat model and returns the generated text.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AskService answers a natural-language question about the course.
type AskService interface {
	Ask(ctx context.Context, question string) (string, error)
}
