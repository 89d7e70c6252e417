package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// ServerEngine talks to Ollama's OpenAI-compatible chat completions
// endpoint. Useful when the ollama binary is not on PATH but the daemon is
// reachable.
type ServerEngine struct {
	baseURL     string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	maxRetries  int
}

// ServerEngineConfig configures the HTTP engine.
type ServerEngineConfig struct {
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // defaults to 5min
	MaxRetries  int           // defaults to 3
}

// NewServerEngine creates the HTTP engine.
func NewServerEngine(cfg ServerEngineConfig) *ServerEngine {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &ServerEngine{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		maxRetries:  cfg.MaxRetries,
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize posts the prompt to /v1/chat/completions. Transport errors and
// 5xx responses are retried with exponential backoff; 4xx responses are
// not.
func (e *ServerEngine) Summarize(ctx context.Context, model, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": e.temperature,
		"max_tokens":  e.maxTokens,
		"stream":      false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrExternal, err)
	}

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second // 1s, 2s, 4s
			slog.Debug("retrying ollama request",
				slog.Int("attempt", attempt), slog.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrExternal, ctx.Err())
			case <-time.After(backoff):
			}
		}

		// Request body is consumed per attempt, so rebuild it each time.
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			e.baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
		if err != nil {
			return "", fmt.Errorf("%w: creating request: %v", ErrExternal, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if isRetryableError(err) {
				continue
			}
			return "", fmt.Errorf("%w: request failed: %v", ErrExternal, err)
		}

		text, status, err := decodeChatResponse(resp)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if status < 500 {
			return "", fmt.Errorf("%w: %v", ErrExternal, err)
		}
	}

	return "", fmt.Errorf("%w: request failed after %d attempts: %v", ErrExternal, e.maxRetries+1, lastErr)
}

// decodeChatResponse reads one response, returning the first choice's
// content or the error plus status code for retry classification.
func decodeChatResponse(resp *http.Response) (string, int, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", resp.StatusCode, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decoding response: %v", err)
	}
	if len(decoded.Choices) == 0 {
		return "", resp.StatusCode, fmt.Errorf("response has no choices")
	}
	return decoded.Choices[0].Message.Content, resp.StatusCode, nil
}

// isRetryableError reports whether a transport error is worth retrying.
func isRetryableError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "EOF")
}
