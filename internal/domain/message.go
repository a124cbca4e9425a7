package domain

import (
	"context"
	"time"
)

// Message is a single post in a channel.
type Message struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ChannelID string    `json:"channel_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRepository defines document store operations on a channel's messages.
type MessageRepository interface {
	GetByID(ctx context.Context, eventID, channelID, messageID string) (*Message, error)
	// ListIDs returns the IDs of every message document in the channel, including documents without data.
	ListIDs(ctx context.Context, eventID, channelID string) ([]string, error)
	Delete(ctx context.Context, eventID, channelID, messageID string) error
}
