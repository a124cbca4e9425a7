package push

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventradar/internal/domain"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNotification() *domain.PushNotification {
	return &domain.PushNotification{
		Topic: "event_ev-1",
		Title: "Summer BBQ",
		Body:  "Olga: hello",
		Data:  map[string]string{"eventId": "ev-1", "type": "announcement"},
	}
}

func TestBuildPublishInput(t *testing.T) {
	input, err := buildPublishInput("arn:aws:sns:eu-central-1:123456789012:", testNotification())
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:sns:eu-central-1:123456789012:event_ev-1", aws.ToString(input.TopicArn))
	assert.Equal(t, "json", aws.ToString(input.MessageStructure))

	var message map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(input.Message)), &message))
	assert.Equal(t, "Olga: hello", message["default"])

	var gcm gcmPayload
	require.NoError(t, json.Unmarshal([]byte(message["GCM"]), &gcm))
	assert.Equal(t, "Summer BBQ", gcm.Notification["title"])
	assert.Equal(t, "ev-1", gcm.Data["eventId"])

	var apns apnsPayload
	require.NoError(t, json.Unmarshal([]byte(message["APNS"]), &apns))
	assert.Equal(t, "Olga: hello", apns.APS.Alert["body"])
	assert.Equal(t, message["APNS"], message["APNS_SANDBOX"])
}

func TestSNSPublisher_Publish(t *testing.T) {
	client := &fakeSNS{}
	p := &snsPublisher{client: client, topicARNPrefix: "arn:prefix:", logger: testLogger()}

	require.NoError(t, p.Publish(context.Background(), testNotification()))
	require.NotNil(t, client.input)
	assert.Equal(t, "arn:prefix:event_ev-1", aws.ToString(client.input.TopicArn))

	client.err = errors.New("throttled")
	err := p.Publish(context.Background(), testNotification())
	assert.ErrorIs(t, err, client.err)
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(PublisherConfig{Provider: "noop"}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), testNotification()))

	p, err = NewPublisher(PublisherConfig{Provider: "carrier-pigeon"}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, p)

	_, err = NewPublisher(PublisherConfig{Provider: "sns"}, testLogger())
	assert.Error(t, err)

	p, err = NewPublisher(PublisherConfig{Provider: "sns", SNS: SNSConfig{
		Region:         "eu-central-1",
		TopicARNPrefix: "arn:prefix:",
	}}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &snsPublisher{}, p)
}

func TestTemplateRenderer_Render(t *testing.T) {
	r := NewTemplateRenderer()

	title, body, err := r.Render("announcement", &domain.AnnouncementData{
		EventTitle: "Summer BBQ", SenderName: "Olga", Text: "Grill is on",
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer BBQ", title)
	assert.Equal(t, "Olga: Grill is on", body)

	title, _, err = r.Render("announcement", &domain.AnnouncementData{SenderName: "Olga", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "New announcement", title)

	_, _, err = r.Render("missing", &domain.AnnouncementData{})
	assert.Error(t, err)
}
