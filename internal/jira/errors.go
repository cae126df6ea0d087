package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrMissingCredentials is returned when the email or API token is empty.
var ErrMissingCredentials = errors.New("jira credentials are not configured")

// APIError is a non-2xx response from the search endpoint.
type APIError struct {
	StatusCode int
	StatusText string

	// Messages holds the errorMessages reported by JIRA, if any.
	Messages []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("jira api error: %d - %s", e.StatusCode, e.StatusText)
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		ErrorMessages []string `json:"errorMessages"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Messages = payload.ErrorMessages
	}
	return apiErr
}

// NetworkError is a failure before any response was received: DNS, refused
// connections, TLS, timeouts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("jira unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
