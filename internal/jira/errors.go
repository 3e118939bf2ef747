package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrRequestDenied = errors.New("jira: request denied")
	ErrRequestFailed = errors.New("jira: request failed")
)

// RequestDeniedError is returned when Jira answers 401 or 403.
// Callers usually react by asking for new credentials.
type RequestDeniedError struct {
	Status  int
	Message string
}

func (e *RequestDeniedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("jira: access denied (status %d)", e.Status)
	}
	return fmt.Sprintf("jira: access denied (status %d): %s", e.Status, e.Message)
}

func (e *RequestDeniedError) Is(target error) bool { return target == ErrRequestDenied }

// RequestFailedError covers transport errors (Status 0) and non-auth error statuses.
type RequestFailedError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestFailedError) Error() string {
	if e.Status == 0 {
		return "jira: " + e.Message
	}
	return fmt.Sprintf("jira returned %d: %s", e.Status, e.Message)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }

// errorResponse is the error envelope Jira uses on most endpoints.
type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	Message       string            `json:"message"`
}

// errorMessage extracts something displayable from an error response body.
func errorMessage(status int, body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		msgs := append([]string{}, er.ErrorMessages...)
		fields := make([]string, 0, len(er.Errors))
		for field := range er.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			msgs = append(msgs, field+": "+er.Errors[field])
		}
		if er.Message != "" {
			msgs = append(msgs, er.Message)
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
