package engine

import (
	"regexp"
	"strings"
)

// Pure text transformations applied to raw model output. These are kept
// free of network concerns so they can be tested in isolation.

// lines that expose the model's internal reasoning rather than code
var thinkingLineRegex = regexp.MustCompile(`(?i)^\s*(?:thinking|reasoning|step\s*\d+)\s*[:\-.]`)

// horizontal rules used by models to separate reasoning from the final answer
var sectionSeparatorRegex = regexp.MustCompile(`(?m)^\s*(?:-{3,}|={3,})\s*$`)

// ClampPrompt silently truncates a prompt to the configured maximum length
func ClampPrompt(prompt string, maxChars int) string {
	if maxChars <= 0 || len(prompt) <= maxChars {
		return prompt
	}

	return prompt[:maxChars]
}

// StripFences removes a leading ```python (or bare ```) fence line and a
// trailing ``` fence, leaving the inner text trimmed
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```python")
			text = strings.TrimPrefix(text, "```")
		}
	}

	text = strings.TrimSpace(text)

	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(text[:len(text)-3])
	}

	return text
}

// FirstCodeBlock extracts the contents of the first fenced code block.
// Returns false if no complete fence pair exists.
func FirstCodeBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}

	afterFence := start + 3

	newline := strings.Index(text[afterFence:], "\n")
	if newline == -1 {
		return "", false
	}

	// skip the language identifier on the opening fence line
	codeStart := afterFence + newline + 1

	end := strings.Index(text[codeStart:], "```")
	if end == -1 {
		return "", false
	}

	return strings.TrimSpace(text[codeStart : codeStart+end]), true
}

// RemoveThinking drops lines that look like leaked reasoning markers
func RemoveThinking(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		if thinkingLineRegex.MatchString(line) {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// TrimToCode cuts prose surrounding the program text: everything before
// the first import-like line and everything after the final render call.
// Text with no import-like line is returned unchanged.
func TrimToCode(text string) string {
	lines := strings.Split(text, "\n")

	first := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			first = i
			break
		}
	}

	if first == -1 {
		return text
	}

	last := len(lines) - 1
	for i := len(lines) - 1; i >= first; i-- {
		if strings.Contains(lines[i], ".render()") {
			last = i
			break
		}
	}

	return strings.Join(lines[first:last+1], "\n")
}

// LastSection returns the final non-empty section of text split on
// horizontal-rule separators, discarding visible intermediate reasoning.
// Text without separators is returned unchanged.
func LastSection(text string) string {
	sections := sectionSeparatorRegex.Split(text, -1)
	if len(sections) < 2 {
		return text
	}

	for i := len(sections) - 1; i >= 0; i-- {
		if section := strings.TrimSpace(sections[i]); section != "" {
			return section
		}
	}

	return strings.TrimSpace(text)
}

// ClampOutput enforces the maximum output size, appending an explicit
// truncation notice when text is cut
func ClampOutput(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}

	return text[:maxChars] + "\n# [output truncated: response exceeded maximum size]"
}

// postProcessCode applies the full generation pipeline to raw model output
func postProcessCode(raw string) string {
	text := StripFences(raw)

	if block, ok := FirstCodeBlock(text); ok {
		text = block
	}

	text = RemoveThinking(text)
	text = TrimToCode(text)

	return strings.TrimSpace(text)
}

// postProcessImprovement applies the improvement pipeline to raw model output
func postProcessImprovement(raw string) string {
	text := StripFences(raw)
	text = LastSection(text)

	return strings.TrimSpace(text)
}
