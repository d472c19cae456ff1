package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var got openAIChatRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + "```json\\n[1]\\n```" + `"}}]}`))
	})

	g := NewOpenAIGenerator("sk-test", "", srv.URL)
	t.Cleanup(g.client.CloseIdleConnections)

	out, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "[1]", out)
	assert.Equal(t, DefaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestOpenAIGenerator_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		g := NewOpenAIGenerator("", "m", "http://127.0.0.1:1")
		_, err := g.Generate(context.Background(), "p")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key")
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})
		g := NewOpenAIGenerator("k", "m", srv.URL+"/v1")
		t.Cleanup(g.client.CloseIdleConnections)

		_, err := g.Generate(context.Background(), "p")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})
		g := NewOpenAIGenerator("k", "m", srv.URL)
		t.Cleanup(g.client.CloseIdleConnections)

		_, err := g.Generate(context.Background(), "p")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestChatCompletionsEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                                          "https://api.openai.com/v1/chat/completions",
		"http://localhost:8080":                     "http://localhost:8080/v1/chat/completions",
		"http://localhost:8080/v1/":                 "http://localhost:8080/v1/chat/completions",
		"http://localhost:8080/v1/chat/completions": "http://localhost:8080/v1/chat/completions",
	}
	for in, want := range cases {
		assert.Equal(t, want, chatCompletionsEndpoint(in), in)
	}
}

func TestOllamaGenerator_Generate(t *testing.T) {
	var got ollamaGenerateRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"  plain answer  ","done":true}`))
	})

	g := NewOllamaGenerator("", srv.URL)
	t.Cleanup(g.client.CloseIdleConnections)

	out, err := g.Generate(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "plain answer", out)
	assert.Equal(t, DefaultOllamaModel, got.Model)
	assert.Equal(t, "prompt text", got.Prompt)
	assert.False(t, got.Stream)
}

func TestOllamaGenerator_HonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	g := NewOllamaGenerator("m", srv.URL)
	t.Cleanup(g.client.CloseIdleConnections)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := g.Generate(ctx, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	g, err := NewGenerator(ctx, Options{})
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = NewGenerator(ctx, Options{Provider: "Ollama", Timeout: 2 * time.Second})
	require.NoError(t, err)
	require.IsType(t, &OllamaGenerator{}, g)
	assert.Equal(t, 2*time.Second, g.(*OllamaGenerator).client.Timeout)

	g, err = NewGenerator(ctx, Options{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIGenerator{}, g)

	g, err = NewGenerator(ctx, Options{Provider: "gemini"})
	require.Error(t, err)
	assert.Nil(t, g)

	_, err = NewGenerator(ctx, Options{Provider: "claude"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
