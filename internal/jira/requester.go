package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Requester attaches Basic credentials to requests and turns Jira error
// responses into RequestDeniedError or RequestFailedError. It never retries.
type Requester struct {
	exec Executor

	mu       sync.Mutex
	username string
	secret   string
	errMsg   string
}

func NewRequester(exec Executor) *Requester {
	return &Requester{exec: exec}
}

// SetAuthentication replaces the stored credentials. They are not checked until the next request.
func (r *Requester) SetAuthentication(username, secret string) {
	r.mu.Lock()
	r.username = username
	r.secret = secret
	r.mu.Unlock()
}

// ErrorMessage returns the message of the last failed request, or "" if the last request succeeded.
func (r *Requester) ErrorMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// Do executes req and decodes a 2xx JSON body into out. out may be nil.
func (r *Requester) Do(ctx context.Context, req Request, out any) error {
	r.mu.Lock()
	header := http.Header{}
	header.Set("Authorization", basicAuth(r.username, r.secret))
	r.errMsg = ""
	r.mu.Unlock()

	resp, err := r.exec.Execute(ctx, req, header)
	if err != nil {
		return r.fail(&RequestFailedError{Message: err.Error(), Err: err})
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return r.fail(&RequestDeniedError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, resp.Body),
		})
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return r.fail(&RequestFailedError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, resp.Body),
		})
	}

	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return r.fail(&RequestFailedError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
			Err:     err,
		})
	}
	return nil
}

func (r *Requester) fail(err error) error {
	msg := ""
	switch e := err.(type) {
	case *RequestDeniedError:
		msg = e.Message
		if msg == "" {
			msg = e.Error()
		}
	case *RequestFailedError:
		msg = e.Message
	}
	r.mu.Lock()
	r.errMsg = msg
	r.mu.Unlock()
	return err
}

func basicAuth(username, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+secret))
}
