package pitstop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StateFetcher defines the interface for talking to the pitstop daemon.
// This interface is implemented by *Client and can be used for testing.
type StateFetcher interface {
	FetchState(ctx context.Context) (*StateResponse, error)
	SaveSelection(ctx context.Context, pids []string) ([]string, error)
}

// Ensure Client implements StateFetcher at compile time.
var _ StateFetcher = (*Client)(nil)

// Client talks to the pitstop HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:5000"
	defaultUserAgent = "gauge/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchState retrieves the daemon's current vehicle state snapshot.
func (c *Client) FetchState(ctx context.Context) (*StateResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StateResponse
	if err := c.do(ctx, http.MethodGet, "/api/state", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SaveSelection submits the tracked PID set and returns the authoritative
// set echoed by the daemon. A transport failure, a non-2xx status, or an
// explicit not-ok response all come back as an error, and callers must not
// update local selection state in that case.
func (c *Client) SaveSelection(ctx context.Context, pids []string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := struct {
		SelectedPIDs []string `json:"selected_pids"`
	}{SelectedPIDs: pids}

	var payload SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/pids", body, &payload); err != nil {
		return nil, err
	}
	if !payload.OK {
		msg := strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = "daemon rejected selection"
		}
		return nil, fmt.Errorf("save selection: %s", msg)
	}
	return payload.SelectedPIDs, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
