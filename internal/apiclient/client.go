// Package apiclient talks to the storefront backend over its REST contract.
//
// Every call goes through Client.do, which normalizes failures into three kinds:
// *ConnectionError when the backend is unreachable, *HTTPStatusError for non-2xx
// responses and *DecodeError when a 2xx body does not match the expected schema.
// The client never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 8 << 20

// TokenStore supplies the bearer token for authenticated calls.
type TokenStore interface {
	Token() string
	ClearToken()
}

// Recorder observes every outbound call.
type Recorder interface {
	ObserveRequest(op, outcome string, elapsed time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logrus.Entry
	Recorder   Recorder
}

type Client struct {
	baseURL    string
	origin     string
	httpClient *http.Client
	logger     *logrus.Entry
	recorder   Recorder
	validate   *validator.Validate

	mu     sync.RWMutex
	tokens TokenStore
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	base := strings.TrimSuffix(opts.BaseURL, "/")
	return &Client{
		baseURL:    base,
		origin:     originOf(base),
		httpClient: httpClient,
		logger:     logger,
		recorder:   opts.Recorder,
		validate:   validator.New(),
	}
}

// SetTokenStore attaches the session that owns the bearer token. The session is
// built on top of the client, so it is attached after construction.
func (c *Client) SetTokenStore(ts TokenStore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Logout drops the bearer token locally. The backend keeps no session to end.
func (c *Client) Logout() {
	if ts := c.tokenStore(); ts != nil {
		ts.ClearToken()
	}
}

func (c *Client) tokenStore() TokenStore {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	start := time.Now()
	err := c.roundTrip(ctx, op, method, path, body, out)
	if c.recorder != nil {
		c.recorder.ObserveRequest(op, outcome(err), time.Since(start))
	}
	if err != nil {
		c.logger.WithFields(logrus.Fields{"op": op, "method": method, "path": path}).WithError(err).Debug("api call failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if ts := c.tokenStore(); ts != nil {
		if token := ts.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return &ConnectionError{Op: op, URL: url, Origin: c.origin, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ConnectionError{Op: op, URL: url, Origin: c.origin, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPStatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	if err := c.validate.Struct(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		connErr   *ConnectionError
		statusErr *HTTPStatusError
		decodeErr *DecodeError
	)
	switch {
	case errors.As(err, &connErr):
		return "connection_error"
	case errors.As(err, &statusErr):
		return "status_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
