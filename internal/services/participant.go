package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"eventradar/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	contextTimeout  time.Duration
	concurrency     int
}

// NewParticipantService creates a ParticipantService that joins participant
// documents with identity-store profiles.
func NewParticipantService(
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
	concurrency int,
) domain.ParticipantService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &participantService{
		participantRepo: participantRepo,
		userRepo:        userRepo,
		contextTimeout:  timeout,
		concurrency:     concurrency,
	}
}

func (s *participantService) ListEventParticipants(ctx context.Context, eventID, callerID string) ([]*domain.ParticipantProfile, error) {
	if callerID == "" {
		return nil, domain.NewError(domain.CodeUnauthenticated, "you must be signed in")
	}
	if eventID == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "eventId is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	profiles := make([]*domain.ParticipantProfile, len(participants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range participants {
		g.Go(func() error {
			u, err := s.userRepo.GetByID(gctx, p.UserID)
			if err != nil {
				return domain.WrapError(domain.CodeInternal,
					fmt.Sprintf("participant data for %s is missing", p.UserID), err)
			}
			profiles[i] = &domain.ParticipantProfile{
				UID:   u.ID,
				Name:  u.NameOrUnknown(),
				Photo: u.PhotoURL,
				Role:  p.Role,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}
