package transcript

import (
	"fmt"
	"strings"
)

// AudioName derives the audio file name for a course video. Video files
// are named like "Course Name #12 [abc123] ｜ extra.mp4": the episode
// number follows " #" and runs to the bracketed id, and everything before
// the fullwidth bar is the display name.
func AudioName(videoFile string) (string, error) {
	head, _, ok := strings.Cut(videoFile, " [")
	if !ok {
		return "", fmt.Errorf("no bracketed id in %q", videoFile)
	}
	_, number, ok := strings.Cut(head, " #")
	if !ok {
		return "", fmt.Errorf("no episode number in %q", videoFile)
	}
	name, _, _ := strings.Cut(videoFile, "｜")
	return fmt.Sprintf("%s_%s.mp3", number, strings.TrimSpace(name)), nil
}
