package domain

import "context"

// PushNotification is a single message broadcast to every subscriber of a topic.
type PushNotification struct {
	Topic string
	Title string
	Body  string
	Data  map[string]string
}

// AnnouncementData holds the values rendered into an announcement notification.
type AnnouncementData struct {
	EventTitle string
	SenderName string
	Text       string
}

// PushPublisher delivers push notifications (infrastructure port).
type PushPublisher interface {
	Publish(ctx context.Context, n *PushNotification) error
}

// NotificationRenderer renders notification content from a named template with the given data.
type NotificationRenderer interface {
	Render(templateName string, data any) (title, body string, err error)
}

// NotificationService reacts to document writes that should notify users.
type NotificationService interface {
	// HandleMessageCreated broadcasts the message when it was posted to an announcement channel.
	HandleMessageCreated(ctx context.Context, eventID, channelID, messageID string) error
}

// EventTopic returns the push topic every subscriber of the event listens on.
func EventTopic(eventID string) string {
	return "event_" + eventID
}
