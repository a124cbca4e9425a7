package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventradar/internal/domain"
)

// eventData is the JSON shape of an event document.
type eventData struct {
	Title string `json:"title"`
	Image any    `json:"image"`
}

type eventRepository struct {
	docs       documentStore
	bulkDelete bool
}

// NewEventRepository returns an EventRepository backed by the documents table.
// When bulkDelete is false DeleteRecursive reports domain.ErrBulkDeleteUnsupported.
func NewEventRepository(db *sql.DB, bulkDelete bool) domain.EventRepository {
	return &eventRepository{
		docs:       documentStore{DB: db},
		bulkDelete: bulkDelete,
	}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	d, err := r.docs.get(ctx, domain.EventPath(id))
	if err != nil {
		return nil, err
	}
	if d.Data == nil {
		return nil, domain.ErrNoData
	}
	var data eventData
	if err := json.Unmarshal(d.Data, &data); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", id, err)
	}
	e := &domain.Event{
		ID:        d.ID,
		Title:     data.Title,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	// Only string image references point at stored objects.
	if image, ok := data.Image.(string); ok {
		e.Image = image
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, domain.EventPath(id))
}

func (r *eventRepository) DeleteRecursive(ctx context.Context, id string) error {
	if !r.bulkDelete {
		return domain.ErrBulkDeleteUnsupported
	}
	return r.docs.deleteTree(ctx, domain.EventPath(id))
}
