package domain

import "context"

// ChannelTypeAnnouncement marks channels whose messages are broadcast as push notifications.
const ChannelTypeAnnouncement = "announcement"

// Channel is a message stream nested under an event.
type Channel struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

// IsAnnouncement reports whether messages in the channel trigger push notifications.
func (c *Channel) IsAnnouncement() bool {
	return c.Type == ChannelTypeAnnouncement
}

// ChannelRepository defines document store operations on an event's channels.
type ChannelRepository interface {
	GetByID(ctx context.Context, eventID, channelID string) (*Channel, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Channel, error)
	// Delete removes only the channel document, not its messages.
	Delete(ctx context.Context, eventID, channelID string) error
}
