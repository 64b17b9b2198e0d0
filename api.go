package ollama

import (
	"context"
	"encoding/json"
	"time"
)

// GenerateRequest is the payload for Generate. A nil Options map is sent as
// an empty object; Stream is always serialized so the server sees the
// requested mode explicitly.
type GenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Options map[string]any `json:"options"`
	Stream  bool           `json:"stream"`
}

// GenerateResponse is the server's answer to a generate call.
type GenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	Context   []int  `json:"context,omitempty"`
	Metrics
}

func (r GenerateResponse) String() string {
	return indented(r)
}

// ChatRequest is the payload for Chat. Messages keep their input order on
// the wire; a nil slice is sent as an empty array.
type ChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Options  map[string]any `json:"options"`
	Stream   bool           `json:"stream"`
}

// ChatResponse is the server's answer to a chat call.
type ChatResponse struct {
	Model      string  `json:"model"`
	CreatedAt  string  `json:"created_at"`
	Message    Message `json:"message"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason,omitempty"`
	Metrics
}

func (r ChatResponse) String() string {
	return indented(r)
}

// Metrics are the timing and token counters the server attaches to
// completed generate and chat responses. Durations are nanoseconds.
type Metrics struct {
	TotalDuration      int64 `json:"total_duration,omitempty"`
	LoadDuration       int64 `json:"load_duration,omitempty"`
	PromptEvalCount    int   `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64 `json:"prompt_eval_duration,omitempty"`
	EvalCount          int   `json:"eval_count,omitempty"`
	EvalDuration       int64 `json:"eval_duration,omitempty"`
}

// Model describes one locally installed model, as listed by /api/tags.
type Model struct {
	Name       string       `json:"name"`
	Model      string       `json:"model,omitempty"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          Families `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

type Families []string

// UnmarshalJSON treats a null families field as an empty list; the server
// sends null for single-family models.
func (f *Families) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Families{}
		return nil
	}

	var families []string
	if err := json.Unmarshal(data, &families); err != nil {
		return err
	}
	*f = Families(families)
	return nil
}

// ModelInfo is the metadata returned by /api/show.
type ModelInfo struct {
	License    string       `json:"license,omitempty"`
	Modelfile  string       `json:"modelfile,omitempty"`
	Parameters string       `json:"parameters,omitempty"`
	Template   string       `json:"template,omitempty"`
	System     string       `json:"system,omitempty"`
	Details    ModelDetails `json:"details"`
}

func (m ModelInfo) String() string {
	return indented(m)
}

// CreateResponse is the final status reported by /api/create.
type CreateResponse struct {
	Status string `json:"status"`
}

// Generate asks model to complete prompt in a single round trip. With
// Stream set the server streams its answer but the body is discarded and
// the returned response is empty; incremental delivery is not supported.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.Options == nil {
		req.Options = map[string]any{}
	}

	var resp GenerateResponse
	if err := c.post(ctx, "/api/generate", req, &resp, req.Stream); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Chat sends a conversation to model and returns the assistant reply. The
// same streaming limitation as Generate applies.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Messages == nil {
		req.Messages = []Message{}
	}
	if req.Options == nil {
		req.Options = map[string]any{}
	}

	var resp ChatResponse
	if err := c.post(ctx, "/api/chat", req, &resp, req.Stream); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListModels returns the models installed on the server.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var resp struct {
		Models []Model `json:"models"`
	}
	if err := c.get(ctx, "/api/tags", &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// ShowModel returns the metadata of one installed model.
func (c *Client) ShowModel(ctx context.Context, name string) (*ModelInfo, error) {
	req := struct {
		Model string `json:"model"`
	}{Model: name}

	var resp ModelInfo
	if err := c.post(ctx, "/api/show", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateModel builds a model named name from the given modelfile content
// and returns the final creation status.
func (c *Client) CreateModel(ctx context.Context, name, modelfile string) (*CreateResponse, error) {
	req := struct {
		Name      string `json:"name"`
		Modelfile string `json:"modelfile"`
		Stream    bool   `json:"stream"`
	}{Name: name, Modelfile: modelfile}

	var resp CreateResponse
	if err := c.post(ctx, "/api/create", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func indented(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
