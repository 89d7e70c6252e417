package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchThread(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write(threadJSON(comment("user_a", "hello", 1, "")))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{UserAgent: "threadsum-test/1.0"})
	thread, err := client.FetchThread(context.Background(), srv.URL+"/r/golang/comments/abc123/title/")
	require.NoError(t, err)

	assert.Equal(t, "threadsum-test/1.0", gotUserAgent)
	assert.Equal(t, "Test thread", thread.Post.Title)
	assert.Equal(t, 1, thread.Count())
	assert.Contains(t, thread.Source, ".json")
}

func TestFetchThreadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{})
	_, err := client.FetchThread(context.Background(), srv.URL+"/r/golang/comments/abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork), "error should wrap ErrNetwork: %v", err)
}

func TestFetchThreadUnreachable(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{})
	_, err := client.FetchThread(context.Background(), url+"/r/golang/comments/abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork), "error should wrap ErrNetwork: %v", err)
}

func TestFetchThreadMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>rate limited</html>"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{})
	_, err := client.FetchThread(context.Background(), srv.URL+"/r/golang/comments/abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse), "error should wrap ErrParse: %v", err)
}
