package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"eventradar/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeStore is an in-memory, path-addressed document store shared by the fake
// repositories. A nil value marks a document that exists without data.
type fakeStore struct {
	mu   sync.Mutex
	docs map[string]any

	bulkErr    error            // returned by DeleteRecursive
	deleteErrs map[string]error // per-path errors returned by single deletes
	listErrs   map[string]error // keyed by "<parent path>/<collection>"
	mutations  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:       make(map[string]any),
		deleteErrs: make(map[string]error),
		listErrs:   make(map[string]error),
	}
}

func (s *fakeStore) put(path string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = v
}

func (s *fakeStore) exists(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[path]
	return ok
}

func (s *fakeStore) get(path string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.docs[path]
	return v, ok
}

func (s *fakeStore) delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteErrs[path]; err != nil {
		return err
	}
	s.mutations++
	delete(s.docs, path)
	return nil
}

// children returns the sorted IDs of the direct children of parent in collection.
func (s *fakeStore) children(parent, collection string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.listErrs[parent+"/"+collection]; err != nil {
		return nil, err
	}
	prefix := parent + "/" + collection + "/"
	var ids []string
	for p := range s.docs {
		if rest, ok := strings.CutPrefix(p, prefix); ok && !strings.Contains(rest, "/") {
			ids = append(ids, rest)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// paths returns every stored path under root, root included.
func (s *fakeStore) paths(root string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for p := range s.docs {
		if p == root || strings.HasPrefix(p, root+"/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

type fakeEventRepo struct{ s *fakeStore }

func (r fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	v, ok := r.s.get(domain.EventPath(id))
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v == nil {
		return nil, domain.ErrNoData
	}
	e := *v.(*domain.Event)
	return &e, nil
}

func (r fakeEventRepo) Delete(ctx context.Context, id string) error {
	return r.s.delete(domain.EventPath(id))
}

func (r fakeEventRepo) DeleteRecursive(ctx context.Context, id string) error {
	if r.s.bulkErr != nil {
		return r.s.bulkErr
	}
	for _, p := range r.s.paths(domain.EventPath(id)) {
		if err := r.s.delete(p); err != nil {
			return err
		}
	}
	return nil
}

type fakeParticipantRepo struct{ s *fakeStore }

func (r fakeParticipantRepo) Get(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	v, ok := r.s.get(domain.ParticipantPath(eventID, userID))
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := &domain.Participant{EventID: eventID, UserID: userID}
	if v != nil {
		p.Role = v.(*domain.Participant).Role
	}
	return p, nil
}

func (r fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	ids, err := r.s.children(domain.EventPath(eventID), domain.CollectionParticipants)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Participant, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, eventID, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r fakeParticipantRepo) Delete(ctx context.Context, eventID, userID string) error {
	return r.s.delete(domain.ParticipantPath(eventID, userID))
}

type fakeChannelRepo struct{ s *fakeStore }

func (r fakeChannelRepo) GetByID(ctx context.Context, eventID, channelID string) (*domain.Channel, error) {
	v, ok := r.s.get(domain.ChannelPath(eventID, channelID))
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := &domain.Channel{ID: channelID, EventID: eventID}
	if v != nil {
		c.Type = v.(*domain.Channel).Type
		c.Name = v.(*domain.Channel).Name
	}
	return c, nil
}

func (r fakeChannelRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Channel, error) {
	ids, err := r.s.children(domain.EventPath(eventID), domain.CollectionChannels)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Channel, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetByID(ctx, eventID, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r fakeChannelRepo) Delete(ctx context.Context, eventID, channelID string) error {
	return r.s.delete(domain.ChannelPath(eventID, channelID))
}

type fakeMessageRepo struct{ s *fakeStore }

func (r fakeMessageRepo) GetByID(ctx context.Context, eventID, channelID, messageID string) (*domain.Message, error) {
	v, ok := r.s.get(domain.MessagePath(eventID, channelID, messageID))
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v == nil {
		return nil, domain.ErrNoData
	}
	m := *v.(*domain.Message)
	return &m, nil
}

func (r fakeMessageRepo) ListIDs(ctx context.Context, eventID, channelID string) ([]string, error) {
	return r.s.children(domain.ChannelPath(eventID, channelID), domain.CollectionMessages)
}

func (r fakeMessageRepo) Delete(ctx context.Context, eventID, channelID, messageID string) error {
	return r.s.delete(domain.MessagePath(eventID, channelID, messageID))
}

// fakeImageStorage records deleted object paths.
type fakeImageStorage struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeImageStorage) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, path)
	return nil
}

// fakeUserRepo is an in-memory identity store.
type fakeUserRepo struct {
	byID map[string]*domain.User
	errs map[string]error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User), errs: make(map[string]error)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// seedEvent stores an event with an organizer, a member, an announcement
// channel with two messages, and a chat channel with three messages.
func seedEvent(s *fakeStore, eventID, image string) {
	s.put(domain.EventPath(eventID), &domain.Event{ID: eventID, Title: "Summer BBQ", Image: image})
	s.put(domain.ParticipantPath(eventID, "u-org"), &domain.Participant{Role: domain.RoleOrganizer})
	s.put(domain.ParticipantPath(eventID, "u-member"), &domain.Participant{Role: "member"})
	s.put(domain.ChannelPath(eventID, "ch-ann"), &domain.Channel{Type: domain.ChannelTypeAnnouncement})
	s.put(domain.ChannelPath(eventID, "ch-chat"), &domain.Channel{Type: "chat"})
	for i := 1; i <= 2; i++ {
		s.put(domain.MessagePath(eventID, "ch-ann", fmt.Sprintf("a-%d", i)), &domain.Message{SenderID: "u-org", Text: "hello"})
	}
	for i := 1; i <= 3; i++ {
		s.put(domain.MessagePath(eventID, "ch-chat", fmt.Sprintf("c-%d", i)), &domain.Message{SenderID: "u-member", Text: "hi"})
	}
}

var errBoom = errors.New("boom")
