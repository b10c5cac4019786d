package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"courseqa/internal/config"
	embhf "courseqa/internal/embedding/hfinference"
	"courseqa/internal/transcript"
)

// artifactRecord is the corpus artifact layout consumed by the server.
type artifactRecord struct {
	Title     string    `json:"title"`
	Number    int       `json:"number"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

func main() {
	_ = godotenv.Load()

	var (
		cfgPath   string
		chunksDir string
		outPath   string
		groupSize int
		batchSize int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file")
	flag.StringVar(&chunksDir, "chunks", "jsons", "Directory of per-video chunk JSON files")
	flag.StringVar(&outPath, "out", "models/embeddings.json", "Output corpus artifact path")
	flag.IntVar(&groupSize, "group", 5, "Chunks merged per segment")
	flag.IntVar(&batchSize, "batch", 16, "Texts embedded per request")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	embedder, err := embhf.NewClient(embhf.Config{
		URL:      cfg.Embedding.URL,
		TokenEnv: cfg.Embedding.TokenEnv,
		Timeout:  time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("embedding client init failed: %v", err)
	}

	entries, err := os.ReadDir(chunksDir)
	if err != nil {
		log.Fatalf("failed to read chunks dir: %v", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			paths = append(paths, filepath.Join(chunksDir, e.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		log.Fatalf("no chunk files found in %s", chunksDir)
	}

	var records []artifactRecord
	for _, p := range paths {
		f, err := transcript.ReadFile(p)
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, c := range transcript.MergeChunks(f.Chunks, groupSize) {
			records = append(records, artifactRecord{
				Title:  c.Title,
				Number: c.Number,
				Start:  c.Start,
				End:    c.End,
				Text:   c.Text,
			})
		}
	}
	log.Printf("merged %d files into %d segments", len(paths), len(records))

	bar := progressbar.Default(int64(len(records)), "embedding")
	ctx := context.Background()
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		texts := make([]string, 0, end-i)
		for _, r := range records[i:end] {
			texts = append(texts, r.Text)
		}
		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			log.Fatalf("embed batch %d-%d: %v", i, end, err)
		}
		for j, v := range vectors {
			records[i+j].Embedding = v
		}
		_ = bar.Add(end - i)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}
	data, err := json.Marshal(records)
	if err != nil {
		log.Fatalf("failed to marshal artifact: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("failed to write artifact: %v", err)
	}
	fmt.Printf("wrote %d segments to %s\n", len(records), outPath)
}
