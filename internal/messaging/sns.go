package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/jrzesz33/civ6_notif/internal/models"
)

// Subject is the email subject of every turn notification.
const Subject = "Civilization 6 Play By Cloud Notifications"

// SNSAPI is the subset of the SNS client used here
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher defines the interface for publishing notifications to SNS
type SNSPublisher interface {
	Publish(ctx context.Context, n *models.Notification) error
}

// SNSClient implements SNSPublisher using AWS SNS
type SNSClient struct {
	client   SNSAPI
	topicArn string
	logger   *slog.Logger
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(client SNSAPI, topicArn string, logger *slog.Logger) *SNSClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &SNSClient{
		client:   client,
		topicArn: topicArn,
		logger:   logger,
	}
}

// Publish sends the notification text to the topic subscribers
func (s *SNSClient) Publish(ctx context.Context, n *models.Notification) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicArn),
		Message:  aws.String(n.Text),
		Subject:  aws.String(Subject),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"notification_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.ID),
			},
		},
	}
	// SNS rejects attributes with empty values
	if n.Game != "" {
		input.MessageAttributes["game"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(n.Game),
		}
	}

	result, err := s.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish notification to SNS: %w", err)
	}

	s.logger.InfoContext(ctx, "notification published to SNS",
		slog.String("notification_id", n.ID),
		slog.String("sns_message_id", aws.ToString(result.MessageId)),
		slog.String("topic_arn", s.topicArn),
	)

	return nil
}
