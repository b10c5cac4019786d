// Package corpus loads the precomputed transcript-segment artifact and
// exposes it read-only for the lifetime of the process.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"courseqa/internal/domain"
)

// record mirrors the artifact layout produced by the offline pipeline.
type record struct {
	Title     string    `json:"title"`
	Number    int       `json:"number"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

// Store holds the fixed set of transcript segments. It is immutable after
// Load, so concurrent readers need no locking.
type Store struct {
	segments  []domain.Segment
	dimension int
}

// Load reads the corpus artifact from path. It fails with a
// domain.CorpusLoadError if the artifact is missing, malformed, empty, or
// contains embeddings of inconsistent dimensionality.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.CorpusLoadError{Path: path, Err: err}
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &domain.CorpusLoadError{Path: path, Err: err}
	}
	segments := make([]domain.Segment, len(records))
	for i, r := range records {
		segments[i] = domain.Segment{
			VideoNumber: r.Number,
			VideoTitle:  r.Title,
			Start:       r.Start,
			End:         r.End,
			Text:        r.Text,
			Embedding:   r.Embedding,
		}
	}
	store, err := New(segments)
	if err != nil {
		return nil, &domain.CorpusLoadError{Path: path, Err: err}
	}
	return store, nil
}

// New builds a store from already-materialized segments, enforcing the
// same invariants as Load: at least one segment, identical embedding
// dimensionality throughout, and every segment's start before its end.
func New(segments []domain.Segment) (*Store, error) {
	if len(segments) == 0 {
		return nil, errors.New("corpus contains no segments")
	}
	dim := len(segments[0].Embedding)
	if dim == 0 {
		return nil, errors.New("segment 0 has an empty embedding")
	}
	for i := range segments {
		if len(segments[i].Embedding) != dim {
			return nil, fmt.Errorf("segment %d embedding has %d dimensions, expected %d", i, len(segments[i].Embedding), dim)
		}
		if segments[i].Start >= segments[i].End {
			return nil, fmt.Errorf("segment %d spans [%v, %v], start must precede end", i, segments[i].Start, segments[i].End)
		}
	}
	return &Store{segments: segments, dimension: dim}, nil
}

// Len returns the number of segments in the corpus.
func (s *Store) Len() int { return len(s.segments) }

// Dimension returns the embedding dimensionality shared by all segments.
func (s *Store) Dimension() int { return s.dimension }

// Segment returns the segment at position i in artifact order.
func (s *Store) Segment(i int) *domain.Segment { return &s.segments[i] }

// Segments returns all segments in artifact order. Callers must not mutate.
func (s *Store) Segments() []domain.Segment { return s.segments }
