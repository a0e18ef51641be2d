package llm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// appended when accumulated streaming output hits the size ceiling
const TruncationMarker = "\n# [output truncated: maximum response size reached]"

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// readStream accumulates SSE chat completion deltas into a single string.
// When maxChars is positive and the accumulated output reaches it, reading
// stops early and a truncation marker is appended; the remainder of the
// stream is abandoned.
func readStream(r io.Reader, maxChars int) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		if payload == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// keep-alive comments and malformed frames are skipped
			continue
		}

		for _, choice := range chunk.Choices {
			out.WriteString(choice.Delta.Content)
		}

		if maxChars > 0 && out.Len() >= maxChars {
			return out.String()[:maxChars] + TruncationMarker, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: reading stream: %v", ErrUpstream, err)
	}

	return strings.TrimSpace(out.String()), nil
}
