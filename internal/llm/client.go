package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"codeberg.org/animagen/server/internal/logger"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 180 * time.Second
	defaultMaxTokens = 8192
	temperature      = 0.7
)

// shared HTTP client for model endpoint calls
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// client-side rate limiter for outbound model calls (10 req/s, burst 5)
var outboundRateLimiter = rate.NewLimiter(10, 5)

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
	Stream      bool      `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// handle wraps one configured connection to the model endpoint,
// bound to a single model identity
type handle struct {
	model      string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Client lazily constructs and caches a handle to the model endpoint.
// Only one handle is live at a time; switching between primary and
// fallback identities tears down and rebuilds it.
type Client struct {
	config Config

	mu     sync.Mutex
	handle *handle
}

func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{config: config}
}

// acquireHandle returns the cached handle, rebuilding it when the
// requested model identity differs from the active one
func (c *Client) acquireHandle(useFallback bool) (*handle, error) {
	model := c.config.PrimaryModel
	if useFallback {
		model = c.config.FallbackModel
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil && c.handle.model == model {
		return c.handle, nil
	}

	if c.config.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrClientConfig)
	}

	if model == "" {
		return nil, fmt.Errorf("%w: no model configured", ErrClientConfig)
	}

	if !strings.HasPrefix(c.config.BaseURL, "http") {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrClientConfig, c.config.BaseURL)
	}

	if c.handle != nil {
		logger.Info("switching model", "from", c.handle.model, "to", model)
	}

	c.handle = &handle{
		model:      model,
		baseURL:    strings.TrimSuffix(c.config.BaseURL, "/"),
		apiKey:     c.config.APIKey,
		httpClient: sharedHTTPClient,
	}

	return c.handle, nil
}

// ActiveModel reports which model identity the live handle is bound to
func (c *Client) ActiveModel() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil {
		return ""
	}

	return c.handle.model
}

// Complete issues a chat completion call and returns the response text.
// The handle is acquired under the mutex; the network call itself runs
// without any lock held.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	h, err := c.acquireHandle(req.UseFallback)
	if err != nil {
		return "", err
	}

	messages := make([]Message, 0, len(req.History)+1)
	messages = append(messages, req.History...)
	messages = append(messages, Message{Role: "user", Content: req.UserPrompt})

	// the OpenAI-compatible API carries the system turn as the first message
	if req.SystemPrompt != "" {
		messages = append([]Message{{Role: "system", Content: req.SystemPrompt}}, messages...)
	}

	body, err := json.Marshal(chatRequest{
		Model:       h.model,
		Messages:    messages,
		MaxTokens:   defaultMaxTokens,
		Temperature: temperature,
		Stream:      req.Stream,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// per-call timeout layered under the caller's deadline
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)

	if err := outboundRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(snippet))
	}

	if req.Stream {
		return readStream(resp.Body, req.MaxChars)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstream)
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
