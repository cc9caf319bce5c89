// Package api is the HTTP client for the /api/logs backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"timekeeper/internal/journal"
	"timekeeper/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const logsPath = "/api/logs"

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Code, e.Body)
}

// Client talks to the TimeKeeper backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListLogs fetches every log entry, newest first.
func (c *Client) ListLogs(ctx context.Context) ([]journal.LogEntry, error) {
	var logs []journal.LogEntry
	if err := c.do(ctx, http.MethodGet, logsPath, nil, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []journal.LogEntry{}
	}
	return logs, nil
}

// CreateLog records an activity for a slot. The response body is not used.
func (c *Client) CreateLog(ctx context.Context, activity, slotTime string) error {
	body := journal.NewLogRequest{Activity: activity, SlotTime: slotTime}
	return c.do(ctx, http.MethodPost, logsPath, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	timer := logging.StartTimer(logging.CategoryAPI, method+" "+path)
	defer timer.StopWithThreshold(2 * time.Second)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	logging.Get(logging.CategoryAPI).Debug("backend response",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
