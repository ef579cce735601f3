// Package apiclient is the HTTP client for the candidate service wire
// contract. A single Client implements both onboarding.CandidatesAPI and
// onboarding.DocumentsAPI.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"candidate-onboarding/internal/onboarding"
)

// Client talks to a candidate service instance. A fresh bearer token is
// obtained from Tokens for every request; tokens are never cached here.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  oauth2.TokenSource
}

// New builds a Client for the given base URL (including any path prefix,
// e.g. "https://api.example.com/api/v1").
func New(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Tokens:  tokens,
	}
}

func (c *Client) bearer() (string, error) {
	if c.Tokens == nil {
		return "", onboarding.ErrAuthTokenMissing
	}
	tok, err := c.Tokens.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", onboarding.ErrAuthTokenMissing, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return "", onboarding.ErrAuthTokenMissing
	}
	return tok.AccessToken, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	token, err := c.bearer()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// APIError is a non-2xx response decoded from the standard error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}

func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
