package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Do_JSONBody(t *testing.T) {
	var gotBody map[string]string
	var gotContentType, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(Config{})
	resp, err := client.Do(context.Background(), RequestConfig{
		Method: http.MethodPost,
		URL:    server.URL,
		Body:   map[string]string{"content": "hello"},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotUserAgent != defaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if gotBody["content"] != "hello" {
		t.Errorf("body content = %q, want hello", gotBody["content"])
	}
}

func TestClient_Do_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad payload"))
	}))
	defer server.Close()

	_, err := NewClient(Config{}).Do(context.Background(), RequestConfig{Method: http.MethodPost, URL: server.URL})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Do() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusBadRequest)
	}
	if !strings.Contains(statusErr.Error(), "bad payload") {
		t.Errorf("Error() = %q, want response body", statusErr.Error())
	}
}

func TestClient_Do_SingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(Config{}).Do(context.Background(), RequestConfig{Method: http.MethodPost, URL: server.URL})
	if err == nil {
		t.Fatal("Do() error = nil, want error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestClient_Do_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{MaxAttempts: 2})
	if _, err := client.Do(context.Background(), RequestConfig{Method: http.MethodPost, URL: server.URL}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}

func TestClient_Do_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{MaxAttempts: 3})
	if _, err := client.Do(context.Background(), RequestConfig{Method: http.MethodPost, URL: server.URL}); err == nil {
		t.Fatal("Do() error = nil, want error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestClient_Do_DoesNotFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	_, err := NewClient(Config{}).Do(context.Background(), RequestConfig{Method: http.MethodPost, URL: server.URL})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusFound {
		t.Errorf("Do() error = %v, want 302 StatusError", err)
	}
}

func TestClient_Do_ErrorOmitsURLPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 20 * time.Millisecond})
	_, err := client.Do(context.Background(), RequestConfig{
		Method: http.MethodPost,
		URL:    server.URL + "/api/webhooks/1/very-secret",
	})
	if err == nil {
		t.Fatal("Do() error = nil, want timeout")
	}
	if strings.Contains(err.Error(), "very-secret") {
		t.Errorf("error leaks URL path: %v", err)
	}
}
