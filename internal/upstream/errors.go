package upstream

import (
	"encoding/json"
	"fmt"
)

// TransportError reports that no HTTP response was obtained after all retries.
type TransportError struct {
	Method   string
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("FIRS API request failed: %s %s after %d attempts: %v", e.Method, e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorDetail is the error object the tax authority returns with a failure.
type ErrorDetail struct {
	Handler       string `json:"handler,omitempty"`
	Message       string `json:"message,omitempty"`
	PublicMessage string `json:"public_message,omitempty"`
	Details       string `json:"details,omitempty"`
	ID            string `json:"id,omitempty"`
}

// APIError is an HTTP status >= 400 from the tax authority. Body holds the
// response exactly as received.
type APIError struct {
	HTTPCode int
	Body     []byte
	Detail   ErrorDetail
	// Message is the top-level message field of the body, if any.
	Message string
}

func (e *APIError) Error() string {
	msg := e.Detail.Message
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("FIRS API error: %s (HTTP %d)", msg, e.HTTPCode)
}

// ErrorJSON returns the upstream error object verbatim, or the whole body
// when it carries no error object. It always returns valid JSON.
func (e *APIError) ErrorJSON() json.RawMessage {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(e.Body, &body) == nil && len(body.Error) > 0 && string(body.Error) != "null" {
		return body.Error
	}
	return rawJSON(e.Body)
}

func newAPIError(code int, body []byte) *APIError {
	apiErr := &APIError{HTTPCode: code, Body: body}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}
	apiErr.Message = text(parsed["message"])
	if detail, ok := parsed["error"].(map[string]any); ok {
		apiErr.Detail = ErrorDetail{
			Handler:       text(detail["handler"]),
			Message:       text(detail["message"]),
			PublicMessage: text(detail["public_message"]),
			Details:       text(detail["details"]),
			ID:            text(detail["id"]),
		}
	}
	return apiErr
}

// text renders a decoded JSON value as a string. Objects and arrays are
// re-encoded so no detail is lost.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// rawJSON returns body if it is valid JSON, else body as a JSON string.
func rawJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
