package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	chathf "courseqa/internal/chat/hfinference"
	"courseqa/internal/config"
	"courseqa/internal/corpus"
	embhf "courseqa/internal/embedding/hfinference"
	"courseqa/internal/server"
	"courseqa/internal/service"
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

	// The process must not serve without a valid corpus.
	store, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("corpus loaded: %d segments, %d dimensions", store.Len(), store.Dimension())

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
	router := server.New(svc)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
