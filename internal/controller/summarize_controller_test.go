package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"notelite-be/internal/service"
	"notelite-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error {
	return nil
}

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func newSummarizeApp(provider llm.LLMProvider) *fiber.App {
	app := fiber.New()
	svc := service.NewSummarizeService(provider, "gpt-3.5-turbo", nopLogger{})
	ctrl := NewSummarizeController(svc)
	// auth is orthogonal here; pass-through guard
	ctrl.RegisterRoutes(app.Group("/api"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func postSummarize(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestSummarizeEndpointMissingTitle(t *testing.T) {
	app := newSummarizeApp(&stubProvider{response: "unused"})

	resp, body := postSummarize(t, app, `{"title":"","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title and content are required.", body["error"])
}

func TestSummarizeEndpointSuccessTrims(t *testing.T) {
	app := newSummarizeApp(&stubProvider{response: "  hello  "})

	resp, body := postSummarize(t, app, `{"title":"T","content":"C"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", body["summary"])
}

func TestSummarizeEndpointUpstreamFailure(t *testing.T) {
	app := newSummarizeApp(&stubProvider{err: errors.New("openai api error (status 500): raw upstream secret body")})

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewBufferString(`{"title":"T","content":"C"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "raw upstream secret body",
		"upstream error detail must never reach the caller")

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "Failed to generate summary from OpenAI.", parsed["error"])
}

func TestSummarizeEndpointMalformedBody(t *testing.T) {
	app := newSummarizeApp(&stubProvider{response: "unused"})

	resp, body := postSummarize(t, app, `{not json`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Something went wrong while summarizing.", body["error"])
}

func TestSummarizeEndpointEmptyCompletionFallback(t *testing.T) {
	app := newSummarizeApp(&stubProvider{response: ""})

	resp, body := postSummarize(t, app, `{"title":"T","content":"C"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Failed to generate summary.", body["summary"])
}
