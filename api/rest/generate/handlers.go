package generate

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"codeberg.org/animagen/server/internal/config"
	apierrors "codeberg.org/animagen/server/internal/errors"
	"codeberg.org/animagen/server/internal/gate"
	"codeberg.org/animagen/server/internal/llm"
	"codeberg.org/animagen/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// CodeGenerator produces animation code for a prompt
type CodeGenerator interface {
	GenerateCode(ctx context.Context, prompt string, history []llm.Message) (string, error)
}

// creates a handler for code generation
func Handler(eng CodeGenerator, g *gate.Gate, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// hard byte ceiling on the raw transport payload, enforced before
		// any JSON decoding
		limit := cfg.MaxRequestBytes()

		if c.Request.ContentLength > limit {
			c.JSON(http.StatusRequestEntityTooLarge, Response{
				Error: "request body too large",
				Code:  "// Error generating code: request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				c.JSON(http.StatusRequestEntityTooLarge, Response{
					Error: "request body too large",
					Code:  "// Error generating code: request body too large",
				})
				return
			}

			c.JSON(http.StatusBadRequest, Response{
				Error: "invalid request body",
				Code:  "// Error generating code: invalid request body",
			})
			return
		}

		prompt := strings.TrimSpace(req.Prompt)

		if !gate.ValidPrompt(prompt) {
			c.JSON(http.StatusBadRequest, Response{
				Error: "prompt is required and must be at least 10 characters",
				Code:  "// Error generating code: prompt too short",
			})
			return
		}

		key := c.ClientIP()

		if remaining, ok := g.Check(key); !ok {
			apierrors.TooManyRequests(c, "please wait before requesting another generation", remaining)
			return
		}

		g.Begin()
		defer g.End()

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		code, err := eng.GenerateCode(ctx, prompt, req.History)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				c.JSON(http.StatusRequestTimeout, Response{
					Error: "generation timed out",
					Code:  "// Error generating code: request timed out",
				})
				return
			}

			logger.ErrorErr(err, "generation aborted", "client", key)

			c.JSON(http.StatusInternalServerError, Response{
				Error: "generation failed",
				Code:  "// Error generating code: internal error",
			})
			return
		}

		g.Record(key)

		c.JSON(http.StatusOK, Response{Code: code})
	}
}
