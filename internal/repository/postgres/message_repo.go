package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventradar/internal/domain"
)

type messageData struct {
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	Type     string `json:"type"`
}

type messageRepository struct {
	docs documentStore
}

func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &messageRepository{docs: documentStore{DB: db}}
}

func (r *messageRepository) GetByID(ctx context.Context, eventID, channelID, messageID string) (*domain.Message, error) {
	d, err := r.docs.get(ctx, domain.MessagePath(eventID, channelID, messageID))
	if err != nil {
		return nil, err
	}
	if d.Data == nil {
		return nil, domain.ErrNoData
	}
	var data messageData
	if err := json.Unmarshal(d.Data, &data); err != nil {
		return nil, fmt.Errorf("decode message %s: %w", messageID, err)
	}
	return &domain.Message{
		ID:        d.ID,
		EventID:   eventID,
		ChannelID: channelID,
		SenderID:  data.SenderID,
		Text:      data.Text,
		Type:      data.Type,
		CreatedAt: d.CreatedAt,
	}, nil
}

func (r *messageRepository) ListIDs(ctx context.Context, eventID, channelID string) ([]string, error) {
	return r.docs.listIDs(ctx, domain.ChannelPath(eventID, channelID), domain.CollectionMessages)
}

func (r *messageRepository) Delete(ctx context.Context, eventID, channelID, messageID string) error {
	return r.docs.delete(ctx, domain.MessagePath(eventID, channelID, messageID))
}
