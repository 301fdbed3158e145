package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewDiscordClient_Defaults(t *testing.T) {
	client := NewDiscordClient(DiscordClientConfig{
		WebhookURL: "https://discord.com/api/webhooks/1/abc",
	})

	if client == nil {
		t.Fatal("NewDiscordClient() returned nil")
	}
	if client.webhookURL != "https://discord.com/api/webhooks/1/abc" {
		t.Errorf("webhookURL = %v", client.webhookURL)
	}
	if client.logger == nil {
		t.Error("logger should not be nil")
	}
}

func TestDiscordClient_Send_Success(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &got); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewDiscordClient(DiscordClientConfig{
		WebhookURL: server.URL,
		Logger:     slog.Default(),
	})

	msg := "It is now Alice's turn in Civ6 game 42"
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v, want nil", err)
	}
	if got.Content != msg {
		t.Errorf("content = %q, want %q", got.Content, msg)
	}
}

func TestDiscordClient_Send_RejectedStatusIsLogged(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"deleted webhook", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"Unknown Webhook"}`))
			}))
			defer server.Close()

			var logs bytes.Buffer
			client := NewDiscordClient(DiscordClientConfig{
				WebhookURL: server.URL,
				Logger:     slog.New(slog.NewTextHandler(&logs, nil)),
			})
			if err := client.Send(context.Background(), "msg"); err != nil {
				t.Errorf("Send() error = %v, want nil", err)
			}
			if attempts != 1 {
				t.Errorf("attempts = %d, want 1", attempts)
			}
			out := logs.String()
			if !strings.Contains(out, "level=WARN") || !strings.Contains(out, fmt.Sprintf("status=%d", tt.status)) {
				t.Errorf("missing warning for status %d: %s", tt.status, out)
			}
			if strings.Contains(out, server.URL) {
				t.Errorf("logs contain webhook URL: %s", out)
			}
		})
	}
}

func TestDiscordClient_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewDiscordClient(DiscordClientConfig{WebhookURL: url})
	if err := client.Send(context.Background(), "msg"); err == nil {
		t.Error("Send() error = nil, want error")
	}
}

func TestDiscordClient_Send_Empty(t *testing.T) {
	client := NewDiscordClient(DiscordClientConfig{WebhookURL: "http://127.0.0.1:1"})

	if err := client.Send(context.Background(), ""); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send() error = %v, want ErrEmptyMessage", err)
	}
}

func TestDiscordClient_Send_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewDiscordClient(DiscordClientConfig{WebhookURL: server.URL})
	if err := client.Send(ctx, "msg"); err == nil {
		t.Error("Send() error = nil, want context error")
	}
}

func TestDiscordClient_Send_LongMessageUnchanged(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	msg := strings.Repeat("é", 2500)
	client := NewDiscordClient(DiscordClientConfig{WebhookURL: server.URL})
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.Content != msg {
		t.Errorf("content length = %d, want %d", len(got.Content), len(msg))
	}
}

// Verify interface implementation
var _ Client = (*DiscordClient)(nil)
