package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventradar/internal/domain"
)

type participantData struct {
	Role string `json:"role"`
}

type participantRepository struct {
	docs documentStore
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{docs: documentStore{DB: db}}
}

func (r *participantRepository) Get(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	d, err := r.docs.get(ctx, domain.ParticipantPath(eventID, userID))
	if err != nil {
		return nil, err
	}
	return decodeParticipant(eventID, d)
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	docs, err := r.docs.list(ctx, domain.EventPath(eventID), domain.CollectionParticipants)
	if err != nil {
		return nil, err
	}
	participants := make([]*domain.Participant, 0, len(docs))
	for _, d := range docs {
		p, err := decodeParticipant(eventID, d)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func (r *participantRepository) Delete(ctx context.Context, eventID, userID string) error {
	return r.docs.delete(ctx, domain.ParticipantPath(eventID, userID))
}

// decodeParticipant tolerates documents without data; they yield an empty role.
func decodeParticipant(eventID string, d *document) (*domain.Participant, error) {
	p := &domain.Participant{EventID: eventID, UserID: d.ID}
	if d.Data == nil {
		return p, nil
	}
	var data participantData
	if err := json.Unmarshal(d.Data, &data); err != nil {
		return nil, fmt.Errorf("decode participant %s: %w", d.ID, err)
	}
	p.Role = data.Role
	return p, nil
}
