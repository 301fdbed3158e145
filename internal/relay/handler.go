// Package relay turns Play By Cloud webhook events into Discord and SNS
// notifications.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/jrzesz33/civ6_notif/internal/messaging"
	"github.com/jrzesz33/civ6_notif/internal/models"
	"github.com/jrzesz33/civ6_notif/internal/notification"
	appconfig "github.com/jrzesz33/civ6_notif/pkg/config"
)

// Ack is the empty acknowledgment returned to API Gateway.
type Ack struct{}

// Handler relays turn events to the enabled destinations
type Handler struct {
	config    *appconfig.Config
	discord   notification.Client
	publisher messaging.SNSPublisher
	logger    *slog.Logger
}

// NewHandler creates a new relay handler. discord and publisher may be nil
// when the matching destination is disabled.
func NewHandler(
	cfg *appconfig.Config,
	discord notification.Client,
	publisher messaging.SNSPublisher,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		config:    cfg,
		discord:   discord,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleEvent delivers one turn notification. Discord is tried first; a
// Discord transport failure ends the invocation before SNS is attempted.
func (h *Handler) HandleEvent(ctx context.Context, event models.TurnEvent) (Ack, error) {
	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With(slog.String("request_id", lc.AwsRequestID))
	}

	if err := event.Validate(); err != nil {
		logger.WarnContext(ctx, "rejecting turn event", slog.String("error", err.Error()))
		return Ack{}, fmt.Errorf("invalid turn event: %w", err)
	}

	n := models.NewNotification(event)
	logger = logger.With(
		slog.String("notification_id", n.ID),
		slog.String("game", n.Game),
	)
	logger.InfoContext(ctx, "relaying turn notification",
		slog.String("player", n.Player),
		slog.String("turn", n.Turn),
		slog.Bool("send_to_discord", h.config.SendToDiscord),
		slog.Bool("send_to_sns", h.config.SendToSNS),
	)

	if h.config.SendToDiscord {
		if h.discord == nil {
			return Ack{}, errors.New("discord delivery enabled without a client")
		}
		if err := h.discord.Send(ctx, n.Text); err != nil {
			logger.ErrorContext(ctx, "discord delivery failed", slog.String("error", err.Error()))
			return Ack{}, err
		}
		logger.InfoContext(ctx, "discord notification sent")
	}

	if h.config.SendToSNS {
		if h.publisher == nil {
			return Ack{}, errors.New("sns delivery enabled without a publisher")
		}
		if err := h.publisher.Publish(ctx, n); err != nil {
			logger.ErrorContext(ctx, "sns delivery failed", slog.String("error", err.Error()))
			return Ack{}, err
		}
	}

	if !h.config.Enabled() {
		logger.InfoContext(ctx, "no destinations enabled, notification dropped")
	}

	return Ack{}, nil
}
