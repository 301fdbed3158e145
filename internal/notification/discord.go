package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jrzesz33/civ6_notif/internal/httpclient"
)

// Client defines the interface for notification operations
type Client interface {
	Send(ctx context.Context, message string) error
}

// ErrEmptyMessage is returned when there is nothing to send.
var ErrEmptyMessage = errors.New("message is empty")

// DiscordClient posts messages to a Discord webhook
type DiscordClient struct {
	webhookURL string
	httpClient *httpclient.Client
	logger     *slog.Logger
}

// DiscordClientConfig holds configuration for the Discord client
type DiscordClientConfig struct {
	WebhookURL string
	Timeout    time.Duration
	// MaxAttempts defaults to a single attempt
	MaxAttempts int
	Logger      *slog.Logger
}

// webhookPayload is the body of a Discord webhook execution
type webhookPayload struct {
	Content string `json:"content"`
}

// NewDiscordClient creates a new Discord webhook client
func NewDiscordClient(config DiscordClientConfig) *DiscordClient {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 1
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &DiscordClient{
		webhookURL: config.WebhookURL,
		httpClient: httpclient.NewClient(httpclient.Config{
			Timeout:     config.Timeout,
			MaxAttempts: config.MaxAttempts,
			Logger:      config.Logger,
		}),
		logger: config.Logger,
	}
}

// Send posts the message to the webhook. A non-2xx reply is logged and
// dropped; only transport failures are returned.
func (c *DiscordClient) Send(ctx context.Context, message string) error {
	if message == "" {
		return ErrEmptyMessage
	}

	_, err := c.httpClient.Do(ctx, httpclient.RequestConfig{
		Method: http.MethodPost,
		URL:    c.webhookURL,
		Body:   webhookPayload{Content: message},
	})
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		c.logger.WarnContext(ctx, "Discord rejected notification",
			slog.Int("status", statusErr.StatusCode),
			slog.String("body", statusErr.Body),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to send Discord notification: %w", err)
	}

	c.logger.DebugContext(ctx, "Discord notification sent",
		slog.Int("length", len(message)),
	)
	return nil
}
