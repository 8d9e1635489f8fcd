// Package backend is the single HTTP client the console uses to talk to the
// commerce backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
)

const (
	msgTimedOut  = "Request timed out"
	msgCancelled = "Request cancelled"

	headerRequestID = "X-Request-ID"
)

// TokenSource supplies the bearer token. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token() string
}

// Observer receives one call per finished request; status 0 marks a
// transport failure.
type Observer interface {
	ObserveBackend(method, resource string, status int, elapsed time.Duration)
}

// Client performs JSON requests against the backend.
type Client interface {
	Request(ctx context.Context, method, path string, body any) (json.RawMessage, error)
	Do(ctx context.Context, method, path string, body, out any) error
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	observer   Observer
	logger     *slog.Logger
}

// NewHTTPClient creates a client rooted at baseURL. tokens and observer may be nil.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, observer Observer, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		baseURL:  parsed,
		tokens:   tokens,
		observer: observer,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Do runs Request and decodes a non-empty result into out.
func (c *HTTPClient) Do(ctx context.Context, method, p string, body, out any) error {
	raw, err := c.Request(ctx, method, p, body)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Request sends body as JSON and returns the raw JSON response. A 2xx reply
// with an empty or non-JSON body yields nil. Every failure is a
// *errors.RequestError.
func (c *HTTPClient) Request(ctx context.Context, method, p string, body any) (json.RawMessage, error) {
	endpoint, resource, err := c.resolve(p)
	if err != nil {
		return nil, &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, resource, 0, started)
		reqErr := transportError(ctx, err)
		c.logger.Warn("backend request failed",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("path", p),
			slog.String("error", err.Error()),
		)
		return nil, reqErr
	}
	defer resp.Body.Close()
	c.observe(method, resource, resp.StatusCode, started)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &domainErrors.RequestError{Status: resp.StatusCode, Message: errorMessage(data)}
		c.logger.Warn("backend request rejected",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("path", p),
			slog.Int("status", resp.StatusCode),
			slog.String("message", reqErr.Message),
		)
		return nil, reqErr
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || !json.Valid(data) {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

func (c *HTTPClient) observe(method, resource string, status int, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveBackend(method, resource, status, time.Since(started))
}

// resolve joins p (which may carry a query) onto the base URL and returns the
// first path segment as the metrics resource label.
func (c *HTTPClient) resolve(p string) (string, string, error) {
	ref, err := url.Parse(p)
	if err != nil {
		return "", "", fmt.Errorf("parse path %q: %w", p, err)
	}
	// Segments are appended without cleaning so an escaped id stays one
	// segment and dot segments never climb out of the resource.
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	endpoint.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimPrefix(ref.EscapedPath(), "/")
	endpoint.RawQuery = ref.RawQuery

	resource := strings.TrimPrefix(ref.Path, "/")
	if i := strings.IndexByte(resource, '/'); i >= 0 {
		resource = resource[:i]
	}
	return endpoint.String(), resource, nil
}

func transportError(ctx context.Context, err error) *domainErrors.RequestError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &domainErrors.RequestError{Message: msgCancelled, Err: context.Canceled}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &domainErrors.RequestError{Message: msgTimedOut, Err: err}
	default:
		return &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: err}
	}
}

type detailItem struct {
	Msg string `json:"msg"`
}

// errorMessage extracts a human message from an error body: detail (string
// or list of {msg}), then message, then error.
func errorMessage(data []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return domainErrors.GenericRequestMessage
	}
	if msg := detailMessage(body.Detail); msg != "" {
		return msg
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Error != "" {
		return body.Error
	}
	return domainErrors.GenericRequestMessage
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var items []detailItem
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
