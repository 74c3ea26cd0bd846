package posapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

// Config configures a POS API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the base round tripper, http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Client talks to the upstream POS REST API on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	log        *zap.Logger
}

// envelope is the POS API response wrapper: {status, message, data}.
type envelope struct {
	Status  json.RawMessage `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a client. A nil session sends unauthenticated requests,
// which is what the login call needs.
func NewClient(cfg Config, session *Session, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := base
	if session != nil {
		transport = &oauth2.Transport{Source: session, Base: base}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		session:    session,
		log:        log.Named("posapi"),
	}
}

// Session returns the session bound to the client, nil for anonymous clients.
func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("posapi: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("posapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send executes the request and decodes the envelope's data into out.
// A 401 invalidates the bound session.
func (c *Client) send(req *http.Request, path string, out any) (int, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return 0, &Error{StatusCode: http.StatusUnauthorized, Message: "Session expired", Method: req.Method, Path: path}
		}
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Error(err),
		)
		return 0, fmt.Errorf("posapi: %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("posapi: read %s %s: %w", req.Method, path, err)
	}

	c.log.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := ""
		if decodeErr == nil {
			msg = messageOf(env.Message)
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
			c.session.Invalidate()
		}
		return resp.StatusCode, &Error{StatusCode: resp.StatusCode, Message: msg, Method: req.Method, Path: path}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if decodeErr != nil {
		return resp.StatusCode, fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, path, decodeErr)
	}
	if isNull(env.Data) {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, path, err)
	}
	return resp.StatusCode, nil
}

func messageOf(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Page is a paged list as returned by the POS API: {items, page, limit, total}.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// decodePage reads `data` as a page. Missing or non-list items yield an empty list.
func decodePage[T any](data json.RawMessage) (Page[T], error) {
	var raw struct {
		Items json.RawMessage `json:"items"`
		Page  json.RawMessage `json:"page"`
		Limit json.RawMessage `json:"limit"`
		Total json.RawMessage `json:"total"`
	}
	page := Page[T]{Items: []T{}}
	if isNull(data) || json.Unmarshal(data, &raw) != nil {
		return page, nil
	}
	page.Page = atoi(raw.Page)
	page.Limit = atoi(raw.Limit)
	page.Total = atoi(raw.Total)

	if !isArray(raw.Items) {
		return page, nil
	}
	if err := json.Unmarshal(raw.Items, &page.Items); err != nil {
		return page, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func atoi(raw json.RawMessage) int {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	return int(v)
}
