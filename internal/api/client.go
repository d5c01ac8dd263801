// Package api implements the REST client for the meeting-preparation
// backend. It is a thin, stateless wrapper: one HTTP call per method, JSON
// in and out, no retries and no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to one backend instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (useful for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request debugging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the backend address this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues one JSON request and decodes the response body into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.logger.Debug("API request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error body.
// Backends return either {"detail": "..."} or {"error": "..."}; plain text
// bodies are passed through as-is.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return string(data)
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// PrepareMeeting submits a standard meeting-preparation job.
func (c *Client) PrepareMeeting(ctx context.Context, req PrepareRequest) (*PrepareResponse, error) {
	var resp PrepareResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/meetings/prepare", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PrepareCustom submits a job running only the named agents, with optional
// caller-supplied data per agent.
func (c *Client) PrepareCustom(ctx context.Context, req CustomPrepareRequest) (*PrepareResponse, error) {
	var resp PrepareResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/meetings/prepare-custom", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PrepareAgenda submits an agenda-only preparation job.
func (c *Client) PrepareAgenda(ctx context.Context, req AgendaPrepareRequest) (*PrepareResponse, error) {
	var resp PrepareResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/meetings/prepare-agenda", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JobStatus fetches the current state of one job. The returned status is
// coerced through ParseStatus so callers never see an unrecognized value.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	endpoint := "/api/v1/meetings/jobs/" + url.PathEscape(jobID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &job); err != nil {
		return nil, err
	}
	job.Status = ParseStatus(string(job.Status))
	return &job, nil
}

// ListJobs returns all jobs known to the backend, keyed by job id.
func (c *Client) ListJobs(ctx context.Context) (map[string]JobSummary, error) {
	var jobs map[string]JobSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/meetings/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeleteJob removes a job from the backend.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	endpoint := "/api/v1/meetings/jobs/" + url.PathEscape(jobID)
	var resp DeleteResponse
	return c.do(ctx, http.MethodDelete, endpoint, nil, &resp)
}
