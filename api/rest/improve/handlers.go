package improve

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"codeberg.org/animagen/server/internal/config"
	"codeberg.org/animagen/server/internal/errors"
	"codeberg.org/animagen/server/internal/gate"
	"github.com/gin-gonic/gin"
)

// PromptImprover elaborates a terse prompt into a detailed one
type PromptImprover interface {
	ImprovePrompt(ctx context.Context, prompt string) (string, error)
}

// creates a handler for prompt improvement
func Handler(eng PromptImprover, g *gate.Gate, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := cfg.MaxRequestBytes()

		if c.Request.ContentLength > limit {
			errors.PayloadTooLarge(c, "")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if stderrors.As(err, &maxBytesErr) {
				errors.PayloadTooLarge(c, "")
				return
			}

			errors.ValidationError(c, "invalid request body")
			return
		}

		prompt := strings.TrimSpace(req.Prompt)

		if !gate.ValidPrompt(prompt) {
			errors.ValidationError(c, "prompt is required and must be at least 10 characters")
			return
		}

		key := c.ClientIP()

		if remaining, ok := g.Check(key); !ok {
			errors.TooManyRequests(c, "please wait before requesting another improvement", remaining)
			return
		}

		g.Begin()
		defer g.End()

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		improved, err := eng.ImprovePrompt(ctx, prompt)
		if err != nil {
			if stderrors.Is(err, context.DeadlineExceeded) {
				errors.RequestTimeout(c, "prompt improvement timed out")
				return
			}

			errors.InternalError(c, "failed to improve prompt", err)
			return
		}

		g.Record(key)

		c.JSON(http.StatusOK, Response{ImprovedPrompt: improved})
	}
}
