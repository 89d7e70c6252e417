// Package reddit fetches a discussion thread from Reddit's public JSON
// endpoint and parses it into a post plus a nested comment tree.
package reddit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultUserAgent = "threadsum/1.0"

// Client fetches threads over Reddit's public .json endpoint.
type Client struct {
	http      *http.Client
	userAgent string
}

// ClientConfig configures the thread client.
type ClientConfig struct {
	UserAgent string
	Timeout   time.Duration // defaults to 15s
}

// NewClient creates a thread client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// NormalizeURL turns a thread URL as pasted from a browser into the JSON
// endpoint for that thread: query string and trailing slash dropped,
// ".json" appended.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid thread URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid thread URL %q: expected http(s) scheme", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(u.Path, ".json") {
		u.Path += ".json"
	}
	return u.String(), nil
}

// FetchThread issues a single GET for the thread's JSON representation and
// parses it. There is exactly one attempt: any transport failure or non-2xx
// status is returned wrapping ErrNetwork, a malformed body wrapping ErrParse.
func (c *Client) FetchThread(ctx context.Context, threadURL string) (*Thread, error) {
	jsonURL, err := NormalizeURL(threadURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jsonURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	slog.Debug("fetching thread", slog.String("url", jsonURL))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrNetwork, jsonURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrNetwork, jsonURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %v", ErrNetwork, jsonURL, err)
	}

	thread, err := ParseThread(body)
	if err != nil {
		return nil, err
	}
	thread.Source = jsonURL

	slog.Debug("thread fetched",
		slog.String("title", thread.Post.Title),
		slog.Int("comments", thread.Count()))

	return thread, nil
}
