// Package transcript holds the offline preprocessing stages that produce
// the corpus artifact: chunk-group merging and audio-name derivation.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Chunk is one fine-grained transcript slice as produced by transcription.
type Chunk struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Text   string  `json:"text"`
}

// File is a single per-video transcript file: its chunks plus the full text.
type File struct {
	Chunks []Chunk `json:"chunks"`
	Text   string  `json:"text"`
}

// MergeChunks merges consecutive chunks into groups of n. Each merged
// chunk keeps the group's first start time and last end time, and joins
// the texts with single spaces. n defaults to 5 when not positive.
func MergeChunks(chunks []Chunk, n int) []Chunk {
	if n <= 0 {
		n = 5
	}
	if len(chunks) == 0 {
		return nil
	}
	merged := make([]Chunk, 0, (len(chunks)+n-1)/n)
	for i := 0; i < len(chunks); i += n {
		end := i + n
		if end > len(chunks) {
			end = len(chunks)
		}
		group := chunks[i:end]
		texts := make([]string, len(group))
		for j, c := range group {
			texts[j] = c.Text
		}
		merged = append(merged, Chunk{
			Number: group[0].Number,
			Title:  group[0].Title,
			Start:  group[0].Start,
			End:    group[len(group)-1].End,
			Text:   strings.Join(texts, " "),
		})
	}
	return merged
}

// ReadFile parses a per-video transcript JSON file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}
