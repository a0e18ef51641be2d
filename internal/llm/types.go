package llm

import (
	"context"
	"errors"
	"time"
)

// issues chat completions against the configured model endpoint
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// a single turn of conversation history, in OpenAI wire format
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one chat completion call. History ordering
// is chronological and preserved on the wire.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	History      []Message

	// UseFallback binds the call to the fallback model identity
	UseFallback bool

	// Stream requests incremental delivery; accumulated output is
	// cut off at MaxChars with a truncation marker appended
	Stream   bool
	MaxChars int
}

// Config holds the connection settings for the model endpoint
type Config struct {
	APIKey        string
	BaseURL       string
	PrimaryModel  string
	FallbackModel string
	Timeout       time.Duration
}

var (
	// ErrClientConfig means the endpoint handle could not be constructed
	// (missing credentials or model identity). Retrying the same model
	// cannot succeed.
	ErrClientConfig = errors.New("llm: invalid client configuration")

	// ErrUpstream means the endpoint rejected or failed the call mid-flight
	ErrUpstream = errors.New("llm: upstream request failed")
)
