package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"expense_tracker/internal/logger"
	"expense_tracker/internal/session"
)

const DefaultBaseURL = "http://localhost:8000"

// BaseURLFromEnv returns EXPENSE_API_URL or DefaultBaseURL.
func BaseURLFromEnv(lookup func(string) string) string {
	if v := strings.TrimSpace(lookup("EXPENSE_API_URL")); v != "" {
		return v
	}
	return DefaultBaseURL
}

// RequestInterceptor may mutate an outgoing request or abort it.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor sees every completed call. err is nil on success and
// an *APIError otherwise; the returned error replaces it.
type ResponseInterceptor func(res *http.Response, err error) error

type Client struct {
	baseURL    string
	httpClient *http.Client
	storage    session.Storage

	mu                   sync.RWMutex
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
	onUnauthorized       func()

	Auth      *AuthService
	Tickets   *TicketService
	Employees *EmployeeService
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New builds a client with the bearer-token request interceptor and the
// 401 response interceptor installed.
func New(baseURL string, storage session.Storage, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		storage:    storage,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.UseRequest(c.bearerToken)
	c.UseResponse(c.unauthorized)

	c.Auth = &AuthService{client: c}
	c.Tickets = &TicketService{client: c}
	c.Employees = &EmployeeService{client: c}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) UseRequest(i RequestInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestInterceptors = append(c.requestInterceptors, i)
}

func (c *Client) UseResponse(i ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseInterceptors = append(c.responseInterceptors, i)
}

// OnUnauthorized sets the callback run whenever the API answers 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) bearerToken(req *http.Request) error {
	if c.storage == nil {
		return nil
	}
	if token, ok := c.storage.Get(session.KeyToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) unauthorized(_ *http.Response, err error) error {
	if !IsUnauthorized(err) {
		return err
	}
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
	return err
}

// Do sends a JSON request and decodes a 2xx body into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	reqInterceptors := append([]RequestInterceptor(nil), c.requestInterceptors...)
	resInterceptors := append([]ResponseInterceptor(nil), c.responseInterceptors...)
	c.mu.RUnlock()

	for _, intercept := range reqInterceptors {
		if err := intercept(req); err != nil {
			return err
		}
	}

	start := time.Now()
	res, callErr := c.send(req, out)
	logger.With("method", method, "path", path).Debug("api call",
		"status", statusCode(res),
		"duration", time.Since(start),
		"error", callErr,
	)

	for _, intercept := range resInterceptors {
		callErr = intercept(res, callErr)
	}
	return callErr
}

// send returns an *APIError on any failure, never a bare error.
func (c *Client) send(req *http.Request, out interface{}) (*http.Response, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return res, newNetworkError(err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, newHTTPError(res.StatusCode, data)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return res, &APIError{Kind: KindDecode, StatusCode: res.StatusCode, Message: err.Error(), Err: err}
		}
	}
	return res, nil
}

func statusCode(res *http.Response) int {
	if res == nil {
		return 0
	}
	return res.StatusCode
}
