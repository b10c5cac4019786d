package main

import (
	"flag"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"courseqa/internal/transcript"
)

func main() {
	var (
		videosDir string
		audiosDir string
	)
	flag.StringVar(&videosDir, "videos", "videos", "Directory of course video files")
	flag.StringVar(&audiosDir, "audios", "audios", "Output directory for extracted audio")
	flag.Parse()

	entries, err := os.ReadDir(videosDir)
	if err != nil {
		log.Fatalf("failed to read videos dir: %v", err)
	}
	if err := os.MkdirAll(audiosDir, 0o755); err != nil {
		log.Fatalf("failed to create audios dir: %v", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, err := transcript.AudioName(e.Name())
		if err != nil {
			log.Printf("skipping %s: %v", e.Name(), err)
			continue
		}
		src := filepath.Join(videosDir, e.Name())
		dst := filepath.Join(audiosDir, name)
		cmd := exec.Command("ffmpeg", "-i", src, dst)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			log.Fatalf("ffmpeg failed on %s: %v", e.Name(), err)
		}
		log.Printf("converted %s -> %s", e.Name(), dst)
	}
}
