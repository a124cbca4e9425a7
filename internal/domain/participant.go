package domain

import "context"

// RoleOrganizer is the participant role allowed to perform destructive operations on an event.
const RoleOrganizer = "organizer"

// Participant is a user's membership in an event, keyed by user ID.
type Participant struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

// IsOrganizer reports whether the participant may delete the event.
func (p *Participant) IsOrganizer() bool {
	return p != nil && p.Role == RoleOrganizer
}

// ParticipantProfile is a participant joined with its identity-store profile.
// swagger:model ParticipantProfile
type ParticipantProfile struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

// ParticipantRepository defines document store operations on an event's participants.
type ParticipantRepository interface {
	// Get returns ErrNotFound when the user is not a participant of the event.
	Get(ctx context.Context, eventID, userID string) (*Participant, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
	// Delete removes the participant document. Deleting an absent document is not an error.
	Delete(ctx context.Context, eventID, userID string) error
}

// ParticipantService resolves participant identity data for an event.
type ParticipantService interface {
	ListEventParticipants(ctx context.Context, eventID, callerID string) ([]*ParticipantProfile, error)
}
