package push

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"eventradar/internal/domain"
)

// SNSConfig holds configuration for AWS SNS.
type SNSConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	TopicARNPrefix     string
	InsecureSkipVerify bool
}

// PublisherConfig holds configuration for creating a push publisher.
type PublisherConfig struct {
	Provider string
	SNS      SNSConfig
}

// NewPublisher creates a publisher from config. Provider "sns" uses AWS SNS; "noop" or unknown uses a no-op publisher.
func NewPublisher(config PublisherConfig, logger *slog.Logger) (domain.PushPublisher, error) {
	switch config.Provider {
	case "sns":
		snsConfig := config.SNS
		if snsConfig.TopicARNPrefix == "" {
			return nil, fmt.Errorf("sns publisher: topic ARN prefix is required")
		}
		if snsConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SNS. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: snsConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: snsConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					snsConfig.AccessKeyID,
					snsConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return &snsPublisher{
			client:         sns.NewFromConfig(awsCfg),
			topicARNPrefix: snsConfig.TopicARNPrefix,
			logger:         logger,
		}, nil
	case "noop":
		return &noopPublisher{logger: logger}, nil
	default:
		logger.Warn("unknown push provider, using noop", "provider", config.Provider)
		return &noopPublisher{logger: logger}, nil
	}
}

// snsAPI is the subset of the SNS client used by the publisher.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsPublisher struct {
	client         snsAPI
	topicARNPrefix string
	logger         *slog.Logger
}

func (p *snsPublisher) Publish(ctx context.Context, n *domain.PushNotification) error {
	input, err := buildPublishInput(p.topicARNPrefix, n)
	if err != nil {
		return err
	}
	result, err := p.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish via SNS: %w", err)
	}
	p.logger.InfoContext(ctx, "push notification published via SNS",
		"topic", n.Topic, "message_id", aws.ToString(result.MessageId))
	return nil
}

type gcmPayload struct {
	Notification map[string]string `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type apnsPayload struct {
	APS  apsPayload        `json:"aps"`
	Data map[string]string `json:"data,omitempty"`
}

type apsPayload struct {
	Alert map[string]string `json:"alert"`
	Sound string            `json:"sound"`
}

// buildPublishInput renders n as an SNS message with one payload per platform.
func buildPublishInput(topicARNPrefix string, n *domain.PushNotification) (*sns.PublishInput, error) {
	alert := map[string]string{"title": n.Title, "body": n.Body}
	gcm, err := json.Marshal(gcmPayload{Notification: alert, Data: n.Data})
	if err != nil {
		return nil, fmt.Errorf("marshal gcm payload: %w", err)
	}
	apns, err := json.Marshal(apnsPayload{APS: apsPayload{Alert: alert, Sound: "default"}, Data: n.Data})
	if err != nil {
		return nil, fmt.Errorf("marshal apns payload: %w", err)
	}
	message, err := json.Marshal(map[string]string{
		"default":      n.Body,
		"GCM":          string(gcm),
		"APNS":         string(apns),
		"APNS_SANDBOX": string(apns),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	return &sns.PublishInput{
		TopicArn:         aws.String(topicARNPrefix + n.Topic),
		Message:          aws.String(string(message)),
		MessageStructure: aws.String("json"),
		Subject:          aws.String(n.Title),
	}, nil
}

type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) Publish(ctx context.Context, n *domain.PushNotification) error {
	p.logger.InfoContext(ctx, "push notification would be sent (noop)", "topic", n.Topic, "title", n.Title)
	return nil
}
