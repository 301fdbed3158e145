package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables read by the relay function. The template generator
// writes the same names into the function definition.
const (
	EnvSendToSNS         = "SEND_TO_SNS"
	EnvSendToDiscord     = "SEND_TO_DISCORD"
	EnvSNSTopicArn       = "SNS_TOPIC_ARN"
	EnvDiscordWebhookURL = "DISCORD_WEBHOOK_URL"
	EnvLogLevel          = "LOG_LEVEL"
	EnvAWSRegion         = "AWS_REGION"
	EnvHTTPTimeout       = "HTTP_TIMEOUT"
)

const (
	defaultAWSRegion   = "us-east-1"
	defaultHTTPTimeout = 10 * time.Second
)

// Config holds all configuration for the relay function
type Config struct {
	// AWS Configuration
	AWSRegion string

	// Delivery switches
	SendToSNS     bool
	SendToDiscord bool

	// SNS Configuration
	SNSTopicArn string

	// Discord Configuration
	DiscordWebhookURL string

	// HTTPTimeout bounds each outbound webhook call
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	awsRegion := os.Getenv(EnvAWSRegion)
	if awsRegion == "" {
		awsRegion = defaultAWSRegion
	}

	sendToSNS, err := parseFlag(EnvSendToSNS)
	if err != nil {
		return nil, err
	}

	sendToDiscord, err := parseFlag(EnvSendToDiscord)
	if err != nil {
		return nil, err
	}

	httpTimeout := defaultHTTPTimeout
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		httpTimeout, err = time.ParseDuration(v)
		if err != nil || httpTimeout <= 0 {
			return nil, fmt.Errorf("invalid %s value: %q (must be a positive duration)", EnvHTTPTimeout, v)
		}
	}

	cfg := &Config{
		AWSRegion:         awsRegion,
		SendToSNS:         sendToSNS,
		SendToDiscord:     sendToDiscord,
		SNSTopicArn:       os.Getenv(EnvSNSTopicArn),
		DiscordWebhookURL: os.Getenv(EnvDiscordWebhookURL),
		HTTPTimeout:       httpTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseFlag reads a True/False switch. Unset means false.
func parseFlag(name string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(name))
	switch strings.ToLower(v) {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid %s value: %q (must be True or False)", name, v)
	}
}

// MustLoad loads configuration and panics if there's an error
// This is useful for Lambda handlers where configuration errors should prevent startup
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Validate checks that every enabled destination is configured
func (c *Config) Validate() error {
	var errs []error

	if c.AWSRegion == "" {
		errs = append(errs, errors.New("AWS region is required"))
	}

	if c.SendToSNS && c.SNSTopicArn == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is enabled", EnvSNSTopicArn, EnvSendToSNS))
	}

	if c.SendToDiscord && c.DiscordWebhookURL == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is enabled", EnvDiscordWebhookURL, EnvSendToDiscord))
	}

	return errors.Join(errs...)
}

// Enabled reports whether any destination is turned on.
func (c *Config) Enabled() bool {
	return c.SendToSNS || c.SendToDiscord
}
