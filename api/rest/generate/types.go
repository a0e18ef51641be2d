package generate

import "codeberg.org/animagen/server/internal/llm"

// Request represents the request body for code generation
type Request struct {
	Prompt  string        `json:"prompt"`
	History []llm.Message `json:"history"`
}

// Response represents the response for code generation. On failure the
// code field still carries a parseable error comment, so consumers
// always receive a well-formed payload.
type Response struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}
