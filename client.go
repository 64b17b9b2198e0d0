// Package ollama is a client for the REST API of a local Ollama server.
// It covers the native /api endpoints and the OpenAI-compatible /v1
// endpoints. Requests are single round trips; streaming responses are not
// delivered incrementally (see the Stream fields on the request types).
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHost is the base URL of a locally running Ollama server.
const DefaultHost = "http://127.0.0.1:11434"

const defaultTimeout = 120 * time.Second

// Client talks to one Ollama server. The zero value is not usable; create
// one with New. Host and timeout are the only state the client holds, and
// they are not guarded against concurrent mutation — configure the client
// before issuing requests from multiple goroutines.
type Client struct {
	host string
	http *http.Client
}

// New creates a client for the server at host, or for DefaultHost when host
// is empty. The host is not validated; a malformed value surfaces as a
// transport failure on the first request.
func New(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host: strings.TrimRight(host, "/"),
		http: &http.Client{Timeout: defaultTimeout},
	}
}

// Host returns the configured base URL.
func (c *Client) Host() string {
	return c.host
}

// SetTimeout replaces the timeout applied to every subsequent request.
// In-flight requests keep the previous value.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.http.Timeout = timeout
}

// post issues a POST with a JSON payload and decodes the response into out.
// When stream is true the response body is read and discarded, and out is
// left untouched; the server streams but this client does not surface
// partial results.
func (c *Client) post(ctx context.Context, path string, payload any, out any, stream bool) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, stream)
}

// get issues a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, out, false)
}

func (c *Client) do(req *http.Request, out any, stream bool) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := serverErrorMessage(body)
		return &StatusError{
			Code:    resp.StatusCode,
			Status:  resp.Status,
			Message: msg,
		}
	}

	if stream {
		return nil
	}

	if msg, ok := serverErrorMessage(body); ok {
		return &ServerError{Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
