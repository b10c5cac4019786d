// Package prompt assembles the guidance prompt sent to the chat model.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"courseqa/internal/domain"
)

const (
	framing = "I am teaching web development in my web development course. Here are video subtitle chunks containing video title, video number, start time in seconds, end time in seconds, the text at that time:"

	instructions = "User asked this question related to the video chunks, you have to answer in a human way (dont mention the above format, its just for you) where and how much content is taught in which video (in which video and at what timestamp) and guide the user to go to that particular video. If user asks unrelated question, tell him that you can only answer questions related to the course"

	separator = "---------------------------------"
)

// chunkRecord is the machine-parseable listing entry for one ranked segment.
type chunkRecord struct {
	Title  string  `json:"title"`
	Number int     `json:"number"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Text   string  `json:"text"`
}

// Compose builds the prompt: the course framing, a JSON listing of the
// ranked segments in order, the quoted question, and the fixed answering
// instructions. Segment text is JSON-serialized, so embedded quotes or
// control characters cannot corrupt the listing.
func Compose(question string, matches []domain.RankedSegment) (string, error) {
	records := make([]chunkRecord, len(matches))
	for i, m := range matches {
		records[i] = chunkRecord{
			Title:  m.Segment.VideoTitle,
			Number: m.Segment.VideoNumber,
			Start:  m.Segment.Start,
			End:    m.Segment.End,
			Text:   m.Segment.Text,
		}
	}
	listing, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal segment listing: %w", err)
	}
	var b strings.Builder
	b.WriteString(framing)
	b.WriteString("\n\n")
	b.Write(listing)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n")
	b.WriteString("\"")
	b.WriteString(question)
	b.WriteString("\"\n")
	b.WriteString(instructions)
	return b.String(), nil
}
