package llm

import "fmt"

// Error is returned by completers for any failed upstream call.
type Error struct {
	// Type categorizes the error
	Type string

	// Message is a human-readable error message
	Message string

	// Code is the HTTP status code (if applicable)
	Code int

	// Details carries the upstream response body when one was returned
	Details string

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeNetwork = "network"
	ErrorTypeAPI     = "api"
	ErrorTypeTimeout = "timeout"
	ErrorTypeEmpty   = "empty_response"
	ErrorTypeConfig  = "config"
)

func (e *Error) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("LLM %s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("LLM %s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNetworkError(err error) *Error {
	return &Error{
		Type:    ErrorTypeNetwork,
		Message: "failed to reach the chat completions API",
		Err:     err,
	}
}

func NewAPIError(code int, details string, err error) *Error {
	return &Error{
		Type:    ErrorTypeAPI,
		Code:    code,
		Message: fmt.Sprintf("chat completions API returned status %d", code),
		Details: details,
		Err:     err,
	}
}

func NewTimeoutError(err error) *Error {
	return &Error{
		Type:    ErrorTypeTimeout,
		Message: "request timed out, the model may be under heavy load",
		Err:     err,
	}
}

func NewEmptyResponseError() *Error {
	return &Error{
		Type:    ErrorTypeEmpty,
		Message: "no choices in response",
	}
}
