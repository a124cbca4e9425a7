package domain

import (
	"context"
	"time"
)

// Event is the top-level document of a coordinated gathering. Participants,
// channels, and messages live in sub-collections beneath it.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasImage reports whether the event references a stored image.
func (e *Event) HasImage() bool {
	return e.Image != ""
}

// EventRepository defines document store operations on events.
type EventRepository interface {
	// GetByID returns ErrNotFound when the document is absent and ErrNoData when it has no data.
	GetByID(ctx context.Context, id string) (*Event, error)
	// Delete removes only the event document. Deleting an absent document is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteRecursive removes the event document and every document nested beneath it.
	// It may fail or return ErrBulkDeleteUnsupported; callers must be prepared to fall back.
	DeleteRecursive(ctx context.Context, id string) error
}

// EventService defines the destructive operations on events.
type EventService interface {
	// DeleteEvent removes the event, its stored image, and all nested documents.
	// Only an organizer of the event may call it.
	DeleteEvent(ctx context.Context, eventID, callerID string) error
}
