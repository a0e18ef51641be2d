package llm

import (
	"strings"
	"testing"
)

func sseBody(chunks ...string) string {
	var b strings.Builder

	for _, chunk := range chunks {
		b.WriteString(`data: {"choices":[{"delta":{"content":"` + chunk + `"}}]}` + "\n\n")
	}

	b.WriteString("data: [DONE]\n\n")

	return b.String()
}

func TestReadStreamAccumulatesDeltas(t *testing.T) {
	body := sseBody("from manim", " import *", "\\n\\nclass Demo(Scene): pass")

	got, err := readStream(strings.NewReader(body), 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := "from manim import *\n\nclass Demo(Scene): pass"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReadStreamStopsAtMaxChars(t *testing.T) {
	body := sseBody("aaaaa", "bbbbb", "ccccc")

	got, err := readStream(strings.NewReader(body), 8)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !strings.HasPrefix(got, "aaaaabbb") {
		t.Errorf("expected output cut at 8 chars, got %q", got)
	}

	if !strings.Contains(got, "output truncated") {
		t.Errorf("expected truncation marker, got %q", got)
	}

	if strings.Contains(got, "ccccc") {
		t.Errorf("expected remaining chunks to be abandoned, got %q", got)
	}
}

func TestReadStreamIgnoresMalformedFrames(t *testing.T) {
	body := ": keep-alive comment\n\n" +
		"data: not json\n\n" +
		sseBody("hello world")

	got, err := readStream(strings.NewReader(body), 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", got)
	}
}

func TestReadStreamEmpty(t *testing.T) {
	got, err := readStream(strings.NewReader("data: [DONE]\n\n"), 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
