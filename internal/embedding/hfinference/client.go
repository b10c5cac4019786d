// Package hfinference is a client for the Hugging Face Inference
// feature-extraction endpoint.
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

// Client calls a remote feature-extraction endpoint to embed text.
// It is stateless and safe for concurrent use.
type Client struct {
	url    string
	token  string
	client *http.Client
}

// Config configures the embeddings client.
type Config struct {
	URL      string
	TokenEnv string
	Timeout  time.Duration
}

// NewClient creates a feature-extraction client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.TokenEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API token in env %s", cfg.TokenEnv)
	}
	if cfg.URL == "" {
		return nil, errors.New("embedding endpoint URL is required")
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		token:  key,
		client: &http.Client{Timeout: t},
	}, nil
}

// Embed returns one embedding vector per input text, in input order.
//
// The provider answers a single unwrapped input with a flat vector and a
// list input with a list of vectors; a flat vector for a single input is
// promoted to a one-element batch. All failures come back as
// *domain.EmbeddingError; there is no automatic retry.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, &domain.EmbeddingError{Err: errors.New("no texts to embed")}
	}
	body := struct {
		Inputs any `json:"inputs"`
	}{}
	// The endpoint omits the batch wrapper for a single raw string input.
	if len(texts) == 1 {
		body.Inputs = texts[0]
	} else {
		body.Inputs = texts
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}

	// Explicit error payloads take precedence over the HTTP status.
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Error != "" {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("remote error: %s", apiErr.Error)}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("embeddings request failed: %s", resp.Status)}
	}

	var batch [][]float64
	if err := json.Unmarshal(payload, &batch); err == nil && len(batch) > 0 {
		if len(batch) != len(texts) {
			return nil, &domain.EmbeddingError{Err: fmt.Errorf("expected %d vectors, got %d", len(texts), len(batch))}
		}
		for i, v := range batch {
			if len(v) == 0 {
				return nil, &domain.EmbeddingError{Err: fmt.Errorf("vector %d is empty", i)}
			}
		}
		return batch, nil
	}

	if len(texts) == 1 {
		var flat []float64
		if err := json.Unmarshal(payload, &flat); err == nil && len(flat) > 0 {
			return [][]float64{flat}, nil
		}
	}

	return nil, &domain.EmbeddingError{Err: errors.New("unrecognized embedding response shape")}
}
