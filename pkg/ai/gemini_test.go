package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

func newGeminiServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestGeminiClient_Generate(t *testing.T) {
	ts := newGeminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"summary\":\"ok\"}"}]}}]}`)
	defer ts.Close()

	client, err := NewGeminiClient(context.Background(), config.ModelConfig{
		GeminiAPIKey: "test-key",
		GeminiModel:  "gemini-test",
		GeminiURL:    ts.URL,
		Temperature:  0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-test", client.Name())

	out, err := client.Generate(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	ts := newGeminiServer(t, `{"candidates":[]}`)
	defer ts.Close()

	client, err := NewGeminiClient(context.Background(), config.ModelConfig{
		GeminiAPIKey: "test-key",
		GeminiModel:  "gemini-test",
		GeminiURL:    ts.URL,
	})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
