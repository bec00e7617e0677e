package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlift/internal/ingesterror"
	"ledgerlift/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenRouterClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenRouterClient(OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "openai/gpt-4o-mini",
	}, &logging.MockLogger{})
	require.NoError(t, err)
	return client
}

func TestNewOpenRouterClientRequiresAPIKey(t *testing.T) {
	_, err := NewOpenRouterClient(OpenRouterConfig{}, nil)
	require.Error(t, err)
	assert.True(t, ingesterror.IsConfiguration(err))
}

func TestCompleteSendsSchemaConstrainedRequest(t *testing.T) {
	var captured map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"expenses\":[]}"}}]}`))
	})

	content, err := client.Complete(context.Background(), Request{
		System:     "system role",
		User:       "user instructions",
		SchemaName: "expenses_schema",
		Schema:     map[string]interface{}{"type": "object"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"expenses":[]}`, content)

	// Wire contract: model, two messages, temperature 0, named schema.
	assert.Equal(t, "openai/gpt-4o-mini", captured["model"])
	assert.Equal(t, float64(0), captured["temperature"])

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "user", messages[1].(map[string]interface{})["role"])

	rf := captured["response_format"].(map[string]interface{})
	assert.Equal(t, "json_schema", rf["type"])
	js := rf["json_schema"].(map[string]interface{})
	assert.Equal(t, "expenses_schema", js["name"])
	assert.Equal(t, true, js["strict"])
}

func TestCompleteOmitsResponseFormatWithoutSchema(t *testing.T) {
	var captured map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"a, b"}}]}`))
	})

	content, err := client.Complete(context.Background(), Request{System: "s", User: "u"})
	require.NoError(t, err)
	assert.Equal(t, "a, b", content)
	assert.NotContains(t, captured, "response_format")
}

func TestCompleteSurfacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(server.Close)

	mock := &logging.MockLogger{}
	client, err := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: server.URL}, mock)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{System: "s", User: "u"})
	require.Error(t, err)

	status, ok := ingesterror.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, err.Error(), "upstream exploded")

	// The log carries the status but never the response body.
	assert.True(t, mock.HasEntry("WARN", "upstream request failed"))
	for _, entry := range mock.Entries {
		for _, field := range entry.Fields {
			assert.NotContains(t, fmt.Sprint(field.Value), "upstream exploded")
		}
	}
}

func TestCompleteRejectsUndecodableEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Complete(context.Background(), Request{System: "s", User: "u"})
	assert.True(t, ingesterror.IsMalformedResponse(err))
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), Request{System: "s", User: "u"})
	assert.True(t, ingesterror.IsMalformedResponse(err))
}

func TestCompleteHonorsContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, Request{System: "s", User: "u"})
	assert.Error(t, err)
}

func TestFingerprintIsStableAndShort(t *testing.T) {
	a := Fingerprint("payload")
	b := Fingerprint("payload")
	c := Fingerprint("other payload")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 12)
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(GeminiConfig{}, nil)
	require.Error(t, err)
	assert.True(t, ingesterror.IsConfiguration(err))

	client, err := NewGeminiClient(GeminiConfig{APIKey: "k"}, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, DefaultGeminiModel, client.ModelName())
}
