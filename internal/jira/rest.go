package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Executor sends a Request to a Jira server. RestClient is the production implementation;
// tests substitute their own.
type Executor interface {
	Execute(ctx context.Context, req Request, header http.Header) (*Response, error)
}

type Response struct {
	StatusCode int
	Body       []byte
}

// RestClient executes requests against one Jira base URL over net/http.
type RestClient struct {
	baseURL string
	http    *http.Client
}

// NewRestClient creates a client for baseURL. With allowUntrustedCerts the server
// certificate is not verified, for self-hosted Jira behind a private CA.
func NewRestClient(baseURL string, allowUntrustedCerts bool) *RestClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if allowUntrustedCerts {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &RestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *RestClient) Execute(ctx context.Context, r Request, header http.Header) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL(c.baseURL), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
