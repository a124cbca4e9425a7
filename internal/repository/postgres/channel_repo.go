package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventradar/internal/domain"
)

type channelData struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type channelRepository struct {
	docs documentStore
}

func NewChannelRepository(db *sql.DB) domain.ChannelRepository {
	return &channelRepository{docs: documentStore{DB: db}}
}

func (r *channelRepository) GetByID(ctx context.Context, eventID, channelID string) (*domain.Channel, error) {
	d, err := r.docs.get(ctx, domain.ChannelPath(eventID, channelID))
	if err != nil {
		return nil, err
	}
	return decodeChannel(eventID, d)
}

func (r *channelRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Channel, error) {
	docs, err := r.docs.list(ctx, domain.EventPath(eventID), domain.CollectionChannels)
	if err != nil {
		return nil, err
	}
	channels := make([]*domain.Channel, 0, len(docs))
	for _, d := range docs {
		c, err := decodeChannel(eventID, d)
		if err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, nil
}

func (r *channelRepository) Delete(ctx context.Context, eventID, channelID string) error {
	return r.docs.delete(ctx, domain.ChannelPath(eventID, channelID))
}

func decodeChannel(eventID string, d *document) (*domain.Channel, error) {
	c := &domain.Channel{ID: d.ID, EventID: eventID}
	if d.Data == nil {
		return c, nil
	}
	var data channelData
	if err := json.Unmarshal(d.Data, &data); err != nil {
		return nil, fmt.Errorf("decode channel %s: %w", d.ID, err)
	}
	c.Name = data.Name
	c.Type = data.Type
	return c, nil
}
