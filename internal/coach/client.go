package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes bounds every response body read by this package.
const maxResponseBytes = 1 << 20

// ErrEmptyReply is returned when a completion contains no text.
var ErrEmptyReply = errors.New("empty reply")

// ErrNoProxy is returned when no proxy URL is configured.
var ErrNoProxy = errors.New("coach proxy URL not configured")

// Completer turns a prompt into a reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// coachRequest is the body accepted by the proxy.
type coachRequest struct {
	Prompt string `json:"prompt"`
}

// coachResponse is the body returned by the proxy.
type coachResponse struct {
	Reply string     `json:"reply,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the typed error returned by the proxy.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProxyError is a non-2xx answer from the proxy.
type ProxyError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProxyError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("coach proxy returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("coach proxy returned HTTP %d: %s: %s", e.Status, e.Code, e.Message)
}

// ProxyClient posts prompts to an EcoTrack coach proxy. It carries no
// upstream credential.
type ProxyClient struct {
	url        string
	httpClient *http.Client
}

// NewProxyClient returns a client for the proxy endpoint at url. A
// non-positive timeout leaves the request bounded only by its context.
func NewProxyClient(url string, timeout time.Duration) *ProxyClient {
	c := &http.Client{}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return NewProxyClientWithHTTP(url, c)
}

// NewProxyClientWithHTTP returns a client using hc for transport.
func NewProxyClientWithHTTP(url string, hc *http.Client) *ProxyClient {
	return &ProxyClient{url: strings.TrimSpace(url), httpClient: hc}
}

// Complete sends prompt to the proxy and returns its reply.
func (c *ProxyClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.url == "" {
		return "", ErrNoProxy
	}

	body, err := json.Marshal(coachRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encoding coach request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building coach request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling coach proxy: %w", err)
	}
	defer resp.Body.Close()

	var out coachResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		pe := &ProxyError{Status: resp.StatusCode}
		if decodeErr == nil && out.Error != nil {
			pe.Code = out.Error.Code
			pe.Message = out.Error.Message
		}
		return "", pe
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decoding coach response: %w", decodeErr)
	}
	if strings.TrimSpace(out.Reply) == "" {
		return "", ErrEmptyReply
	}
	return out.Reply, nil
}
