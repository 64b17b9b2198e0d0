package ollama

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	data, err := json.Marshal(Message{Role: RoleUser, Content: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","content":"hi"}`, string(data))

	var parsed Message
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "user", parsed.Role)
	assert.Equal(t, "hi", parsed.Content)
}

func TestServerErrorMessageShapes(t *testing.T) {
	for name, tc := range map[string]struct {
		body    string
		message string
		found   bool
	}{
		"native string":  {`{"error":"boom"}`, "boom", true},
		"openai object":  {`{"error":{"message":"bad request"}}`, "bad request", true},
		"empty object":   {`{"error":{}}`, "unknown error", true},
		"no error field": {`{"done":true}`, "", false},
		"null error":     {`{"error":null}`, "", false},
		"not json":       {`garbage`, "", false},
	} {
		t.Run(name, func(t *testing.T) {
			message, found := serverErrorMessage([]byte(tc.body))
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.message, message)
		})
	}
}
