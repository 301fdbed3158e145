package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/jrzesz33/civ6_notif/internal/logging"
	"github.com/jrzesz33/civ6_notif/internal/messaging"
	"github.com/jrzesz33/civ6_notif/internal/notification"
	"github.com/jrzesz33/civ6_notif/internal/relay"
	appconfig "github.com/jrzesz33/civ6_notif/pkg/config"
)

func main() {
	// Setup structured logging
	logger := logging.New(os.Stdout, logging.GetLogLevel())
	slog.SetDefault(logger)

	// Load configuration
	cfg := appconfig.MustLoad()

	logger.Info("relay lambda starting",
		slog.String("region", cfg.AWSRegion),
		slog.Bool("send_to_discord", cfg.SendToDiscord),
		slog.Bool("send_to_sns", cfg.SendToSNS),
	)

	var discord notification.Client
	if cfg.SendToDiscord {
		discord = notification.NewDiscordClient(notification.DiscordClientConfig{
			WebhookURL: cfg.DiscordWebhookURL,
			Timeout:    cfg.HTTPTimeout,
			Logger:     logger,
		})
	}

	var publisher messaging.SNSPublisher
	if cfg.SendToSNS {
		awsCfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(cfg.AWSRegion),
		)
		if err != nil {
			logger.Error("failed to load AWS config", slog.String("error", err.Error()))
			panic(fmt.Sprintf("failed to load AWS config: %v", err))
		}
		publisher = messaging.NewSNSClient(sns.NewFromConfig(awsCfg), cfg.SNSTopicArn, logger)
	}

	handler := relay.NewHandler(cfg, discord, publisher, logger)

	// Start Lambda handler
	lambda.Start(handler.HandleEvent)
}
