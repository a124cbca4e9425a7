package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"eventradar/internal/domain"
	"eventradar/internal/metrics"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	channelRepo     domain.ChannelRepository
	messageRepo     domain.MessageRepository
	images          domain.ImageStorage
	logger          *slog.Logger
	contextTimeout  time.Duration
	concurrency     int
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	channelRepo domain.ChannelRepository,
	messageRepo domain.MessageRepository,
	images domain.ImageStorage,
	logger *slog.Logger,
	timeout time.Duration,
	concurrency int,
) domain.EventService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		channelRepo:     channelRepo,
		messageRepo:     messageRepo,
		images:          images,
		logger:          logger,
		contextTimeout:  timeout,
		concurrency:     concurrency,
	}
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	if eventID == "" {
		return domain.NewError(domain.CodeInvalidArgument, `parameter "eventId" is required`)
	}
	if callerID == "" {
		return domain.NewError(domain.CodeUnauthenticated, "only authenticated users can delete events")
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return domain.NewError(domain.CodeNotFound, "event not found")
		case errors.Is(err, domain.ErrNoData):
			return domain.NewError(domain.CodeInternal, "event data is missing")
		}
		return fmt.Errorf("get event: %w", err)
	}

	participant, err := s.participantRepo.Get(ctx, eventID, callerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get participant: %w", err)
	}
	if !participant.IsOrganizer() {
		return domain.NewError(domain.CodePermissionDenied, "only an organizer can delete the event")
	}

	log := s.logger.With("event_id", eventID, "caller_id", callerID)
	be := newBestEffort(log)

	if event.HasImage() {
		be.Run(ctx, "delete_image", eventID, func(ctx context.Context) error {
			return s.deleteImage(ctx, log, event.Image)
		})
	}

	err = s.eventRepo.DeleteRecursive(ctx, eventID)
	if err == nil {
		metrics.EventDeletions.WithLabelValues("bulk").Inc()
		log.InfoContext(ctx, "event deleted", "mode", "bulk")
		return nil
	}
	log.WarnContext(ctx, "recursive delete failed, starting manual deletion", "err", err)

	if err := s.deleteTree(ctx, be, eventID); err != nil {
		return err
	}
	metrics.EventDeletions.WithLabelValues("fallback").Inc()
	log.InfoContext(ctx, "event deleted", "mode", "fallback", "failures", len(be.Failures()))
	return nil
}

// deleteImage removes the stored object behind imageURL. URLs that do not
// address a stored object are skipped.
func (s *eventService) deleteImage(ctx context.Context, log *slog.Logger, imageURL string) error {
	path, err := domain.StoragePath(imageURL)
	if err != nil {
		return err
	}
	if path == "" {
		log.DebugContext(ctx, "image reference has no storage path, skipping", "image", imageURL)
		return nil
	}
	if err := s.images.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete image %s: %w", path, err)
	}
	return nil
}

// channelTree is a channel together with the IDs of its messages.
type channelTree struct {
	channelID  string
	messageIDs []string
}

// deleteTree removes participants, then every channel with its messages, then
// the event document. Every listing happens before the first deletion, so a
// failed listing aborts with nothing removed and a retry is still authorized.
// Individual deletions are best-effort.
func (s *eventService) deleteTree(ctx context.Context, be *bestEffort, eventID string) error {
	participants, channels, err := s.listTree(ctx, eventID)
	if err != nil {
		return err
	}

	g := s.siblings()
	for _, p := range participants {
		be.Go(ctx, g, "delete_participant", p.UserID, func(ctx context.Context) error {
			return s.participantRepo.Delete(ctx, eventID, p.UserID)
		})
	}
	_ = g.Wait()

	for _, ch := range channels {
		g := s.siblings()
		for _, id := range ch.messageIDs {
			be.Go(ctx, g, "delete_message", id, func(ctx context.Context) error {
				return s.messageRepo.Delete(ctx, eventID, ch.channelID, id)
			})
		}
		_ = g.Wait()

		be.Run(ctx, "delete_channel", ch.channelID, func(ctx context.Context) error {
			return s.channelRepo.Delete(ctx, eventID, ch.channelID)
		})
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event document: %w", err)
	}
	return nil
}

func (s *eventService) listTree(ctx context.Context, eventID string) ([]*domain.Participant, []channelTree, error) {
	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, s.abortFallback(ctx, eventID, "list participants", err)
	}
	channels, err := s.channelRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, s.abortFallback(ctx, eventID, "list channels", err)
	}
	trees := make([]channelTree, 0, len(channels))
	for _, ch := range channels {
		ids, err := s.messageRepo.ListIDs(ctx, eventID, ch.ID)
		if err != nil {
			return nil, nil, s.abortFallback(ctx, eventID, "list messages of channel "+ch.ID, err)
		}
		trees = append(trees, channelTree{channelID: ch.ID, messageIDs: ids})
	}
	return participants, trees, nil
}

func (s *eventService) siblings() *errgroup.Group {
	g := &errgroup.Group{}
	g.SetLimit(s.concurrency)
	return g
}

func (s *eventService) abortFallback(ctx context.Context, eventID, step string, err error) error {
	s.logger.ErrorContext(ctx, "manual deletion aborted", "event_id", eventID, "step", step, "err", err)
	return domain.WrapError(domain.CodeInternal, "event deletion incomplete, please retry", fmt.Errorf("%s: %w", step, err))
}
