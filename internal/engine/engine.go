package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codeberg.org/animagen/server/internal/llm"
	"codeberg.org/animagen/server/internal/logger"
	"codeberg.org/animagen/server/internal/monitor"
	backoff "github.com/cenkalti/backoff/v4"
)

const (
	// outputs below this size are almost always truncated or empty API
	// responses rather than legitimate answers
	minPlausibleOutput = 50

	generationFailedPlaceholder = "# Generation likely failed: the model returned an implausibly short response.\n# Please try again or rephrase your prompt."

	defaultInitialBackoff = 500 * time.Millisecond
	maxBackoffInterval    = 30 * time.Second
)

// Options tune the retry and size-bounding behavior of the engine
type Options struct {
	MaxRetries     int
	MaxPromptChars int
	MaxOutputChars int

	// Stream requests incremental delivery from the model endpoint
	Stream bool

	// InitialBackoff overrides the first retry sleep (tests use a tiny value)
	InitialBackoff time.Duration
}

// Engine builds prompts, orchestrates retries with primary-to-fallback
// escalation, and post-processes raw model output
type Engine struct {
	client  llm.Completer
	monitor *monitor.Monitor
	opts    Options
}

func New(client llm.Completer, mon *monitor.Monitor, opts Options) *Engine {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 6
	}

	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaultInitialBackoff
	}

	return &Engine{
		client:  client,
		monitor: mon,
		opts:    opts,
	}
}

// GenerateCode produces Manim code for the given prompt. Upstream
// exhaustion never surfaces as an error: the worst case is a returned
// error-comment string, so downstream consumers always receive a
// syntactically parseable payload. Context cancellation and deadline
// expiry do surface as errors so the caller can report a timeout.
func (e *Engine) GenerateCode(ctx context.Context, prompt string, history []llm.Message) (string, error) {
	defer e.monitor.Reclaim()

	prompt = ClampPrompt(prompt, e.opts.MaxPromptChars)

	system := generationSystemPrompt
	if e.longPrompt(prompt) {
		system = generationSystemPromptShort
	}

	raw, err := e.attemptCompletion(ctx, system, prompt, history)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		logger.ErrorErr(err, "code generation failed after all attempts")

		return fmt.Sprintf("// Error generating code: %v", err), nil
	}

	code := postProcessCode(raw)
	code = ClampOutput(code, e.opts.MaxOutputChars)

	if len(strings.TrimSpace(code)) < minPlausibleOutput {
		logger.Warn("suspiciously short generation output", "length", len(code))
		return generationFailedPlaceholder, nil
	}

	logger.Info("generated code", "prompt_chars", len(prompt), "code_chars", len(code))

	return code, nil
}

// ImprovePrompt elaborates a terse prompt into a detailed one. Unlike
// generation, exhaustion of retries is reported as an error.
func (e *Engine) ImprovePrompt(ctx context.Context, prompt string) (string, error) {
	defer e.monitor.Reclaim()

	prompt = ClampPrompt(prompt, e.opts.MaxPromptChars)

	system := improvementSystemPrompt
	if e.longPrompt(prompt) {
		system = improvementSystemPromptShort
	}

	raw, err := e.attemptCompletion(ctx, system, prompt, nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		return "", fmt.Errorf("failed to improve prompt: %w", err)
	}

	improved := postProcessImprovement(raw)
	improved = ClampOutput(improved, e.opts.MaxOutputChars)

	if len(improved) < minPlausibleOutput {
		return "", fmt.Errorf("failed to improve prompt: model returned an implausibly short response (%d chars)", len(improved))
	}

	logger.Info("improved prompt", "prompt_chars", len(prompt), "improved_chars", len(improved))

	return improved, nil
}

// attemptCompletion delivers the request with up to MaxRetries total
// attempts split across the two model identities: primary until attempts
// reach half the budget, then fallback for the remainder. A primary
// handle that cannot be constructed escalates to the fallback on the
// very first failure. Each failed attempt sleeps with exponentially
// increasing backoff, cancellable through ctx.
func (e *Engine) attemptCompletion(ctx context.Context, system, prompt string, history []llm.Message) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.opts.InitialBackoff
	bo.MaxInterval = maxBackoffInterval
	bo.MaxElapsedTime = 0 // the attempt count bounds the loop, not elapsed time

	primaryBudget := e.opts.MaxRetries / 2
	useFallback := false

	var lastErr error

	for attempt := 0; attempt < e.opts.MaxRetries; attempt++ {
		if attempt >= primaryBudget {
			useFallback = true
		}

		text, err := e.client.Complete(ctx, llm.CompletionRequest{
			SystemPrompt: system,
			UserPrompt:   prompt,
			History:      history,
			UseFallback:  useFallback,
			Stream:       e.opts.Stream,
			MaxChars:     e.opts.MaxOutputChars,
		})
		if err == nil {
			return text, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		// an unconstructable primary handle will never recover, so skip
		// the remaining primary budget without sleeping
		if !useFallback && errors.Is(err, llm.ErrClientConfig) {
			logger.Warn("primary model client unavailable, escalating to fallback", "error", err)
			primaryBudget = 0
			continue
		}

		logger.Warn("model call failed",
			"attempt", attempt+1,
			"fallback", useFallback,
			"error", err,
		)

		select {
		case <-time.After(bo.NextBackOff()):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("all %d attempts failed: %w", e.opts.MaxRetries, lastErr)
}

// longPrompt reports whether the clamped prompt is large enough to
// warrant the condensed system instruction variant
func (e *Engine) longPrompt(prompt string) bool {
	return e.opts.MaxPromptChars > 0 && len(prompt) > e.opts.MaxPromptChars/2
}
