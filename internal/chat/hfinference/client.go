// Package hfinference is a client for the Hugging Face router
// chat-completions endpoint.
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"courseqa/internal/domain"
)

// Client sends prompts to an OpenAI-compatible chat-completions endpoint
// with fixed decoding parameters. It is stateless and safe for concurrent use.
type Client struct {
	url         string
	token       string
	model       string
	maxTokens   int
	temperature float64
	topP        float64
	client      *http.Client
}

// Config configures the chat client. Decoding parameters are fixed at
// construction; they are not per-request tunables.
type Config struct {
	URL         string
	TokenEnv    string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

// NewClient creates a chat-completions client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.TokenEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API token in env %s", cfg.TokenEnv)
	}
	if cfg.URL == "" {
		return nil, errors.New("chat endpoint URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("chat model is required")
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 400
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.4
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.9
	}
	t := cfg.Timeout
	if t == 0 {
		t = 120 * time.Second
	}
	return &Client{
		url:         cfg.URL,
		token:       key,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		client:      &http.Client{Timeout: t},
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends the prompt as a single user message and returns the first
// completion's content. All failures come back as *domain.SynthesisError;
// there is no automatic retry.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body := struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		MaxTokens   int       `json:"max_tokens"`
		Temperature float64   `json:"temperature"`
		TopP        float64   `json:"top_p"`
	}{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", &domain.SynthesisError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return "", &domain.SynthesisError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &domain.SynthesisError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.SynthesisError{Err: err}
	}

	var out struct {
		Error   json.RawMessage `json:"error"`
		Choices []struct {
			Message message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		if resp.StatusCode >= 300 {
			return "", &domain.SynthesisError{Err: fmt.Errorf("chat request failed: %s", resp.Status)}
		}
		return "", &domain.SynthesisError{Err: err}
	}
	if len(out.Error) > 0 && string(out.Error) != "null" {
		return "", &domain.SynthesisError{Err: fmt.Errorf("remote error: %s", out.Error)}
	}
	if resp.StatusCode >= 300 {
		return "", &domain.SynthesisError{Err: fmt.Errorf("chat request failed: %s", resp.Status)}
	}
	if len(out.Choices) == 0 {
		return "", &domain.SynthesisError{Err: errors.New("response has no choices")}
	}
	return out.Choices[0].Message.Content, nil
}
