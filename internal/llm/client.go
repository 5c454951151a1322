// Package llm talks to an OpenAI-compatible chat completion API (OpenRouter by default).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/screenforge/screenforge-backend/config"
)

var (
	// ErrEmptyResponse is returned when the API answers without any message content.
	ErrEmptyResponse = errors.New("no response from AI")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm http %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Completer is what the generation service needs from the client.
type Completer interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

type Client struct {
	BaseURL   string
	APIKey    string
	MaxTokens int
	HTTP      *http.Client

	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

func NewClient(cfg config.LLMConfig) *Client {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:     cfg.APIKey,
		MaxTokens:  cfg.MaxTokens,
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: retries,
		baseDelay:  time.Second,
	}
}

// Complete sends one system and one user message and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: c.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm encode: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		content, err := c.do(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !se.retryable() {
			return "", err
		}
		if errors.Is(err, ErrEmptyResponse) || ctx.Err() != nil {
			return "", err
		}
		if attempt == c.maxRetries {
			break
		}

		sleep := c.backoff(attempt)
		log.Printf("[warn] llm attempt %d failed: %v, retrying in %s", attempt, err, sleep)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(sleep):
		}
	}

	return "", fmt.Errorf("llm failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) backoff(attempt int) time.Duration {
	sleep := c.baseDelay * time.Duration(1<<(attempt-1))
	if half := int64(sleep / 2); half > 0 {
		sleep += time.Duration(rand.Int63n(half))
	}
	if sleep > 8*time.Second {
		sleep = 8 * time.Second
	}
	return sleep
}

func (c *Client) do(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm chat: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("llm decode: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
