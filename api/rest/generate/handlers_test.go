package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"codeberg.org/animagen/server/internal/config"
	"codeberg.org/animagen/server/internal/gate"
	"codeberg.org/animagen/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubCode = `from manim import *

class Demo(Scene):
    def construct(self):
        self.play(Create(Circle()))
`

// implements CodeGenerator for testing
type stubGenerator struct {
	calls atomic.Int64
	fn    func(ctx context.Context, prompt string) (string, error)
}

func (s *stubGenerator) GenerateCode(ctx context.Context, prompt string, _ []llm.Message) (string, error) {
	s.calls.Add(1)

	if s.fn != nil {
		return s.fn(ctx, prompt)
	}

	return stubCode, nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxPromptChars: 2500, // MaxRequestBytes = 10 KB
		MaxOutputChars: 100000,
		RequestTimeout: 2 * time.Second,
		Cooldown:       120 * time.Second,
	}
}

func newTestRouter(stub *stubGenerator, g *gate.Gate, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/generate", Handler(stub, g, cfg))

	return router
}

func postJSON(router *gin.Engine, body string, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":51234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestGenerateSuccess(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestRouter(stub, gate.New(120*time.Second), testConfig())

	w := postJSON(router, `{"prompt":"Animate a circle turning into a square"}`, "203.0.113.7")

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, stubCode, resp.Code)
	assert.Empty(t, resp.Error)
}

func TestGenerateShortPromptRejectedWithoutModelCall(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestRouter(stub, gate.New(120*time.Second), testConfig())

	for _, body := range []string{`{"prompt":""}`, `{"prompt":"short"}`, `{}`} {
		w := postJSON(router, body, "203.0.113.7")
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}

	assert.EqualValues(t, 0, stub.calls.Load(), "the model must never be contacted for invalid prompts")
}

func TestGenerateOversizedPayloadRejectedWithoutModelCall(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestRouter(stub, gate.New(120*time.Second), testConfig())

	// 1 MB payload against a 10 KB ceiling
	huge := bytes.Repeat([]byte("a"), 1<<20)
	body := `{"prompt":"` + string(huge) + `"}`

	w := postJSON(router, body, "203.0.113.7")

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.EqualValues(t, 0, stub.calls.Load())
}

func TestGenerateOversizedChunkedBodyRejected(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestRouter(stub, gate.New(120*time.Second), testConfig())

	// unknown content length forces the MaxBytesReader path
	huge := strings.Repeat("a", 1<<20)
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt":"`+huge+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	req.RemoteAddr = "203.0.113.7:51234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.EqualValues(t, 0, stub.calls.Load())
}

func TestGenerateCooldownSecondCallRejected(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestRouter(stub, gate.New(120*time.Second), testConfig())

	first := postJSON(router, `{"prompt":"Animate a circle turning into a square"}`, "203.0.113.7")
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(router, `{"prompt":"Animate a circle turning into a square"}`, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Contains(t, resp, "time_remaining")
	assert.Greater(t, resp["time_remaining"].(float64), float64(0))

	// a different caller is unaffected
	third := postJSON(router, `{"prompt":"Animate a circle turning into a square"}`, "198.51.100.1")
	assert.Equal(t, http.StatusOK, third.Code)

	assert.EqualValues(t, 2, stub.calls.Load())
}

func TestGenerateTimeoutReturns408(t *testing.T) {
	stub := &stubGenerator{
		fn: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}

	cfg := testConfig()
	cfg.RequestTimeout = 20 * time.Millisecond

	router := newTestRouter(stub, gate.New(120*time.Second), cfg)

	w := postJSON(router, `{"prompt":"Animate a circle turning into a square"}`, "203.0.113.7")

	assert.Equal(t, http.StatusRequestTimeout, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Code, "// Error generating code:")
}

func TestGenerateFailedRequestDoesNotStartCooldown(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestRouter(stub, gate.New(120*time.Second), testConfig())

	// rejected validation must not stamp the ledger
	postJSON(router, `{"prompt":"short"}`, "203.0.113.7")

	w := postJSON(router, `{"prompt":"Animate a circle turning into a square"}`, "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
}
