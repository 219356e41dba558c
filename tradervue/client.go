// Package tradervue is the HTTP client for the trade-journaling service's
// bulk import API. The importer treats an upload as one blocking call:
// Import queues the executions, then waits until the service reports a final
// status document for the core to interpret.
package tradervue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	tvimport "github.com/nall/tv-importofx"
)

const importPath = "/api/v1/imports"

// APIError is a non-2xx reply from the service.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tradervue api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether the request may be retried.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ImportOptions are the upload knobs the service accepts alongside the
// execution batch.
type ImportOptions struct {
	AccountTag         string
	Tags               []string
	AllowDuplicates    bool
	OverlayCommissions bool
}

// Client talks to the journaling service over HTTP with basic auth.
type Client struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger

	// PollInterval is the cadence of WaitForCompletion status checks.
	PollInterval time.Duration
	// MaxRetries bounds retries of a single request on 5xx/429.
	MaxRetries   int
	RetryBackoff time.Duration
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL, username, password string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		username:     username,
		password:     password,
		userAgent:    "tv-importofx",
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		PollInterval: 2 * time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}
}

// importRequest is the wire shape of the bulk import call.
type importRequest struct {
	Executions         []tvimport.Execution `json:"executions"`
	AccountTag         string               `json:"account_tag,omitempty"`
	Tags               []string             `json:"tags,omitempty"`
	AllowDuplicates    bool                 `json:"allow_duplicates,omitempty"`
	OverlayCommissions bool                 `json:"overlay_commissions,omitempty"`
}

// Import uploads the executions and blocks until the service finishes
// processing them, returning its final status document.
func (c *Client) Import(ctx context.Context, execs []tvimport.Execution, opts ImportOptions) (*tvimport.ImportResponse, error) {
	if err := c.queue(ctx, execs, opts); err != nil {
		return nil, err
	}
	c.logger.Info("import queued", "executions", len(execs))
	return c.WaitForCompletion(ctx)
}

// queue posts the batch to the import endpoint.
func (c *Client) queue(ctx context.Context, execs []tvimport.Execution, opts ImportOptions) error {
	body, err := json.Marshal(importRequest{
		Executions:         execs,
		AccountTag:         opts.AccountTag,
		Tags:               opts.Tags,
		AllowDuplicates:    opts.AllowDuplicates,
		OverlayCommissions: opts.OverlayCommissions,
	})
	if err != nil {
		return fmt.Errorf("marshal import request: %w", err)
	}
	if _, err := c.doWithRetry(ctx, http.MethodPost, importPath, body); err != nil {
		return fmt.Errorf("queue import: %w", err)
	}
	return nil
}

// Status fetches the current state of the account's import queue.
func (c *Client) Status(ctx context.Context) (*tvimport.ImportResponse, error) {
	data, err := c.doWithRetry(ctx, http.MethodGet, importPath, nil)
	if err != nil {
		return nil, fmt.Errorf("import status: %w", err)
	}
	var resp tvimport.ImportResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode import status: %w", err)
	}
	return &resp, nil
}

// WaitForCompletion polls the import status until it leaves the queued and
// processing states. Cancellation of ctx stops the wait, not the remote
// import.
func (c *Client) WaitForCompletion(ctx context.Context) (*tvimport.ImportResponse, error) {
	for {
		resp, err := c.Status(ctx)
		if err != nil {
			return nil, err
		}
		if resp.Status != tvimport.StatusQueued && resp.Status != tvimport.StatusProcessing {
			return resp, nil
		}
		c.logger.Debug("import still running", "status", resp.Status)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
}

// doRequest performs one HTTP request against the service.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       data,
		}
		// the service explains most rejections in an "error" property
		var detail struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &detail) == nil && detail.Error != "" {
			apiErr.Message = detail.Error
		}
		return nil, apiErr
	}
	return data, nil
}

// doWithRetry retries retryable failures with exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var lastErr error
	backoff := c.RetryBackoff

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request", "attempt", attempt, "backoff", backoff, "path", path)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		data, err := c.doRequest(ctx, method, path, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.IsRetryable() {
			return nil, err
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", c.MaxRetries+1, lastErr)
}
