// Package httpapi implements secondary.Backend over the warehouse REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/ctxutil"
	"github.com/example/armazem/internal/ports/secondary"
	"github.com/example/armazem/internal/version"
)

// Client implements secondary.Backend.
type Client struct {
	origin     string
	baseURL    string
	httpClient *http.Client
	tokens     secondary.TokenSource
	logger     *zap.Logger
}

// Options configures a Client.
type Options struct {
	Origin    string        // "http://localhost:8001"
	APIPrefix string        // "/api"
	Timeout   time.Duration // zero means no client-side timeout
}

// NewClient creates a backend client. tokens may be nil for unauthenticated use.
func NewClient(opts Options, tokens secondary.TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	origin := strings.TrimRight(opts.Origin, "/")
	return &Client{
		origin:     origin,
		baseURL:    origin + opts.APIPrefix,
		httpClient: &http.Client{Timeout: opts.Timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

var _ secondary.Backend = (*Client)(nil)

// Origin returns the backend origin.
func (c *Client) Origin() string {
	return c.origin
}

// Get fetches path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	data, _, err := c.exchange(ctx, method, path, body, contentType, "application/json")
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Download fetches a binary resource into w.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (string, error) {
	data, contentType, err := c.exchange(ctx, http.MethodGet, path, nil, "", "*/*")
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return contentType, nil
}

// exchange sends one request and returns the body and Content-Type of a 2xx
// response. Other statuses become *apperr.APIError.
func (c *Client) exchange(ctx context.Context, method, path string, body io.Reader, contentType, accept string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	requestID := ctxutil.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &apperr.APIError{
			Status: resp.StatusCode,
			Detail: detail(data),
			Method: method,
			Path:   path,
		}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// detail extracts the backend's message from an error body. The backend
// sends {"detail": "..."} or, for rejected payloads, a list of
// {"loc": [...], "msg": "..."} entries.
func detail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err != nil {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if n := len(it.Loc); n > 0 {
			parts = append(parts, fmt.Sprintf("%v: %s", it.Loc[n-1], it.Msg))
			continue
		}
		parts = append(parts, it.Msg)
	}
	return strings.Join(parts, "; ")
}
