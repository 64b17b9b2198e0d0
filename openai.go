package ollama

import (
	"context"
	"encoding/json"
)

// The /v1 endpoints mirror the OpenAI API so tools built against that
// schema can point at a local server unchanged.

const defaultTemperature = 1.0

// ChatCompletionRequest is the payload for ChatCompletions. MaxTokens at or
// below zero means "server default" and the field is left off the wire; a
// zero Temperature is replaced with the default of 1.0.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// CompletionRequest is the payload for Completions, with the same
// optional-field rules as ChatCompletionRequest.
type CompletionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

// ChatCompletion is an OpenAI-shaped chat result.
type ChatCompletion struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   *Usage                 `json:"usage,omitempty"`
}

func (r ChatCompletion) String() string {
	return indented(r)
}

type ChatCompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Completion is an OpenAI-shaped text completion result.
type Completion struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
}

func (r Completion) String() string {
	return indented(r)
}

type CompletionChoice struct {
	Index        int    `json:"index"`
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// OpenAIModel is one entry of the /v1/models listing.
type OpenAIModel struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

func (m OpenAIModel) String() string {
	data, err := json.Marshal(m)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// ChatCompletions sends a conversation to the OpenAI-compatible chat
// endpoint. Stream is carried on the wire but responses are never
// delivered incrementally.
func (c *Client) ChatCompletions(ctx context.Context, req ChatCompletionRequest) (*ChatCompletion, error) {
	if req.Messages == nil {
		req.Messages = []Message{}
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = 0
	}
	if req.Temperature == 0 {
		req.Temperature = defaultTemperature
	}

	var resp ChatCompletion
	if err := c.post(ctx, "/v1/chat/completions", req, &resp, req.Stream); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Completions sends a prompt to the OpenAI-compatible completions endpoint.
func (c *Client) Completions(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if req.MaxTokens <= 0 {
		req.MaxTokens = 0
	}
	if req.Temperature == 0 {
		req.Temperature = defaultTemperature
	}

	var resp Completion
	if err := c.post(ctx, "/v1/completions", req, &resp, req.Stream); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetModels lists models through the OpenAI-compatible endpoint.
func (c *Client) GetModels(ctx context.Context) ([]OpenAIModel, error) {
	var resp struct {
		Object string        `json:"object"`
		Data   []OpenAIModel `json:"data"`
	}
	if err := c.get(ctx, "/v1/models", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
