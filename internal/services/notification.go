package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"eventradar/internal/domain"
	"eventradar/internal/metrics"
)

const (
	announcementTemplate = "announcement"
	// maxNotificationBody is the longest body, in characters, sent to devices.
	maxNotificationBody = 140
)

type notificationService struct {
	eventRepo      domain.EventRepository
	channelRepo    domain.ChannelRepository
	messageRepo    domain.MessageRepository
	userRepo       domain.UserRepository
	publisher      domain.PushPublisher
	renderer       domain.NotificationRenderer
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewNotificationService returns a NotificationService that broadcasts
// announcement messages to the event's push topic.
func NewNotificationService(
	eventRepo domain.EventRepository,
	channelRepo domain.ChannelRepository,
	messageRepo domain.MessageRepository,
	userRepo domain.UserRepository,
	publisher domain.PushPublisher,
	renderer domain.NotificationRenderer,
	logger *slog.Logger,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		eventRepo:      eventRepo,
		channelRepo:    channelRepo,
		messageRepo:    messageRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		renderer:       renderer,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *notificationService) HandleMessageCreated(ctx context.Context, eventID, channelID, messageID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	log := s.logger.With("event_id", eventID, "channel_id", channelID, "message_id", messageID)

	channel, err := s.channelRepo.GetByID(ctx, eventID, channelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get channel: %w", err)
	}
	if !channel.IsAnnouncement() {
		return nil
	}

	msg, err := s.messageRepo.GetByID(ctx, eventID, channelID, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNoData) {
			metrics.NotificationsPublished.WithLabelValues("skipped").Inc()
			log.WarnContext(ctx, "announcement message vanished before notifying")
			return nil
		}
		return fmt.Errorf("get message: %w", err)
	}

	data := &domain.AnnouncementData{Text: msg.Text, SenderName: domain.UnknownUserName}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	switch {
	case err == nil:
		data.EventTitle = event.Title
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoData):
	default:
		return fmt.Errorf("get event: %w", err)
	}
	if msg.SenderID != "" {
		sender, err := s.userRepo.GetByID(ctx, msg.SenderID)
		switch {
		case err == nil:
			data.SenderName = sender.NameOrUnknown()
		case errors.Is(err, domain.ErrNotFound):
		default:
			return fmt.Errorf("get sender: %w", err)
		}
	}

	title, body, err := s.renderer.Render(announcementTemplate, data)
	if err != nil {
		return fmt.Errorf("render announcement: %w", err)
	}

	n := &domain.PushNotification{
		Topic: domain.EventTopic(eventID),
		Title: title,
		Body:  truncate(body, maxNotificationBody),
		Data: map[string]string{
			"eventId":   eventID,
			"channelId": channelID,
			"messageId": messageID,
			"type":      domain.ChannelTypeAnnouncement,
		},
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		metrics.NotificationsPublished.WithLabelValues("failed").Inc()
		return fmt.Errorf("publish announcement: %w", err)
	}
	metrics.NotificationsPublished.WithLabelValues("sent").Inc()
	log.InfoContext(ctx, "announcement sent", "topic", n.Topic)
	return nil
}

// truncate shortens s to at most limit characters, ending with an ellipsis when cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
