package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletionsMaxTokensOmitted(t *testing.T) {
	for name, maxTokens := range map[string]int{"zero": 0, "negative": -5} {
		t.Run(name, func(t *testing.T) {
			var payload map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				w.Write([]byte(`{"id":"x","choices":[]}`))
			}))
			defer server.Close()

			_, err := New(server.URL).ChatCompletions(context.Background(), ChatCompletionRequest{
				Model:     "m",
				Messages:  []Message{{Role: RoleUser, Content: "hi"}},
				MaxTokens: maxTokens,
			})
			require.NoError(t, err)

			_, present := payload["max_tokens"]
			assert.False(t, present, "max_tokens must be left off the wire")
		})
	}
}

func TestChatCompletionsMaxTokensIncluded(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	_, err := New(server.URL).ChatCompletions(context.Background(), ChatCompletionRequest{
		Model:     "m",
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 256.0, payload["max_tokens"])
}

func TestChatCompletionsDefaults(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	_, err := New(server.URL).ChatCompletions(context.Background(), ChatCompletionRequest{
		Model:    "m",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, payload["temperature"])
	assert.Equal(t, false, payload["stream"])
}

func TestChatCompletionsMessageOrder(t *testing.T) {
	var payload struct {
		Messages []Message `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	messages := []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "answer"},
		{Role: RoleUser, Content: "follow-up"},
	}
	_, err := New(server.URL).ChatCompletions(context.Background(), ChatCompletionRequest{
		Model:    "m",
		Messages: messages,
	})
	require.NoError(t, err)
	assert.Equal(t, messages, payload.Messages)
}

func TestChatCompletionsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1715000000,
			"model":"llama3.2","choices":[{"index":0,"message":{"role":"assistant","content":"Hello!"},
			"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer server.Close()

	resp, err := New(server.URL).ChatCompletions(context.Background(), ChatCompletionRequest{
		Model:    "llama3.2",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "Hello!", resp.Choices[0].Message.Content)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCompletions(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"id":"cmpl-1","object":"text_completion","model":"llama3.2",
			"choices":[{"index":0,"text":"42","finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	resp, err := New(server.URL).Completions(context.Background(), CompletionRequest{
		Model:     "llama3.2",
		Prompt:    "The answer is",
		MaxTokens: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "The answer is", payload["prompt"])
	assert.Equal(t, 8.0, payload["max_tokens"])
	assert.Equal(t, 1.0, payload["temperature"])
	assert.Equal(t, false, payload["stream"])

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "42", resp.Choices[0].Text)
}

func TestGetModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[
			{"id":"llama3.2:latest","object":"model","created":1714000000,"owned_by":"library"},
			{"id":"codellama:7b","object":"model","created":1712000000,"owned_by":"library"}
		]}`))
	}))
	defer server.Close()

	models, err := New(server.URL).GetModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "llama3.2:latest", models[0].ID)
	assert.Equal(t, int64(1714000000), models[0].Created)
	assert.Equal(t, "library", models[1].OwnedBy)
}
