// Package llm is a minimal client for OpenAI-compatible chat completion APIs.
// It is the text generation service behind the planner.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// Config configures a Client. APIKey is required by the upstream service
// but not checked here; a missing key surfaces as a 401 from the API.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	System  string
	Timeout time.Duration
}

// Client calls POST {BaseURL}/chat/completions.
type Client struct {
	cfg  Config
	http *http.Client
}

// New constructs a Client. Zero-valued fields fall back to the OpenAI
// endpoint, gpt-4o-mini, and a 60 second timeout.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as the user message and returns the first choice,
// trimmed. Every failure wraps domain.ErrGeneration.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if c.cfg.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.cfg.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: messages, Temperature: temperature})
	if err != nil {
		return "", fmt.Errorf("llm.Client.Generate: %w: encode: %v", domain.ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm.Client.Generate: %w: %v", domain.ErrGeneration, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm.Client.Generate: %w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("llm.Client.Generate: %w: read body: %v", domain.ErrGeneration, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm.Client.Generate: %w: status %d: %s", domain.ErrGeneration, resp.StatusCode, truncate(raw, 200))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("llm.Client.Generate: %w: decode: %v", domain.ErrGeneration, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm.Client.Generate: %w: no choices", domain.ErrGeneration)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
