package ollama

import (
	"encoding/json"
	"fmt"
)

// StatusError is returned when the server answers with a non-200 status.
// Message carries the server-supplied error message when the body had one.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Status)
}

// ServerError is returned when the server answers 200 but the body carries
// a top-level error field.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}

// errorField accepts the two error shapes the server produces: the native
// endpoints send a plain string, the /v1 endpoints an object with a
// message field.
type errorField struct {
	Message string
}

func (e *errorField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Message = s
		return nil
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Message = obj.Message
	return nil
}

// serverErrorMessage reports whether body carries a top-level error
// indicator, and the message it holds.
func serverErrorMessage(body []byte) (string, bool) {
	var probe struct {
		Error *errorField `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Error == nil {
		return "", false
	}
	if probe.Error.Message == "" {
		return "unknown error", true
	}
	return probe.Error.Message, true
}
