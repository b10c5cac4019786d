package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	chathf "courseqa/internal/chat/hfinference"
	"courseqa/internal/config"
	"courseqa/internal/corpus"
	embhf "courseqa/internal/embedding/hfinference"
	"courseqa/internal/service"
	"courseqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/courseqa/config.yaml if not provided)")
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

	store, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		log.Fatalf("%v", err)
	}

	embedder, err := embhf.NewClient(embhf.Config{
		URL:      cfg.Embedding.URL,
		TokenEnv: cfg.Embedding.TokenEnv,
		Timeout:  time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("embedding client init failed: %v", err)
	}

	chat, err := chathf.NewClient(chathf.Config{
		URL:         cfg.Chat.URL,
		TokenEnv:    cfg.Chat.TokenEnv,
		Model:       cfg.Chat.Model,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
		TopP:        cfg.Chat.TopP,
		Timeout:     time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("chat client init failed: %v", err)
	}

	svc := service.NewAskService(store, embedder, chat, cfg.Search.TopK)
	info := fmt.Sprintf("Corpus loaded: %d segments. Type a question.", store.Len())
	m := tui.New(svc, info)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
