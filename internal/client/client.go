package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const sessionHeader = "vmware-api-session-id"

// VCClient defines the interface for reading operation status from a
// vCenter-style management plane. Login must succeed before any status call.
type VCClient interface {
	Login(ctx context.Context) error
	GetResyncSummary(ctx context.Context, cluster string) (*ResyncSummary, error)
	GetObjectHealth(ctx context.Context, cluster string) (*ObjectHealth, error)
	GetRunningTasks(ctx context.Context, scope string) ([]TaskInfo, error)
	Endpoint() string
}

// ClientConfig holds configuration for DefaultClient.
type ClientConfig struct {
	Endpoint           string
	Username           string
	Password           string
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
}

// DefaultClient implements VCClient using the standard net/http package.
type DefaultClient struct {
	http      *http.Client
	config    ClientConfig
	sessionID string
}

// NewDefaultClient constructs a DefaultClient from the given config.
// It configures TLS skip-verify and request timeout from the config.
// Returns an error if Endpoint is empty.
func NewDefaultClient(cfg ClientConfig) (*DefaultClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("Endpoint is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	return &DefaultClient{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// Endpoint returns the configured base URL of the management plane.
func (c *DefaultClient) Endpoint() string {
	return c.config.Endpoint
}

// Login establishes an authenticated session by POSTing the configured
// credentials to /api/session and storing the returned session token.
// Any failure is wrapped in *SessionError; no status call works without it.
func (c *DefaultClient) Login(ctx context.Context) error {
	url := strings.TrimRight(c.config.Endpoint, "/") + "/api/session"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return &SessionError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.SetBasicAuth(c.config.Username, c.config.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		return &SessionError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return &SessionError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SessionError{Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))}
	}

	// The session endpoint returns the token as a bare JSON string.
	var token string
	if err := json.Unmarshal(body, &token); err != nil {
		return &SessionError{Err: fmt.Errorf("decode token: %w", err)}
	}
	if token == "" {
		return &SessionError{Err: fmt.Errorf("empty session token")}
	}

	c.sessionID = token
	return nil
}

// doGet performs a GET request to the given path (relative to Endpoint)
// with the session token attached. Failures are classified into *FetchError
// so the Termination Policy can distinguish a missing resource from a lost
// session from a retryable hiccup.
func (c *DefaultClient) doGet(ctx context.Context, op, path string) ([]byte, error) {
	url := strings.TrimRight(c.config.Endpoint, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: FetchUnexpected, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(sessionHeader, c.sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classifyTransport(err), Op: op, Err: err}
	}
	defer resp.Body.Close()

	const maxResponseBytes = 8 * 1024 * 1024 // well above any status payload
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{Kind: FetchTransient, Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			Kind: classifyStatus(resp.StatusCode),
			Op:   op,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200)),
		}
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
