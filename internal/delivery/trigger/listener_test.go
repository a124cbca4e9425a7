package trigger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type call struct{ eventID, channelID, messageID string }

type fakeNotificationService struct {
	mu    sync.Mutex
	calls []call
	err   error
	done  chan struct{}
}

func (f *fakeNotificationService) HandleMessageCreated(ctx context.Context, eventID, channelID, messageID string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{eventID, channelID, messageID})
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return f.err
}

type fakeSource struct {
	ch        chan *pq.Notification
	listenErr error
	listened  string
	closed    bool
}

func (f *fakeSource) Listen(channel string) error {
	f.listened = channel
	return f.listenErr
}

func (f *fakeSource) NotificationChannel() <-chan *pq.Notification { return f.ch }

func (f *fakeSource) Ping() error { return nil }

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestDispatcher_Handle(t *testing.T) {
	svc := &fakeNotificationService{}
	d := NewDispatcher(svc, testLogger)
	ctx := context.Background()

	require.NoError(t, d.Handle(ctx, "events/ev-1/channels/ch-ann/messages/m-1"))
	require.NoError(t, d.Handle(ctx, "events/ev-1/participants/u-1"))
	require.NoError(t, d.Handle(ctx, "events/ev-1"))

	assert.Equal(t, []call{{"ev-1", "ch-ann", "m-1"}}, svc.calls)

	svc.err = errors.New("publish failed")
	err := d.Handle(ctx, "events/ev-1/channels/ch-ann/messages/m-2")
	assert.ErrorIs(t, err, svc.err)
}

func TestListener_Run(t *testing.T) {
	svc := &fakeNotificationService{done: make(chan struct{}, 4), err: errors.New("first fails")}
	source := &fakeSource{ch: make(chan *pq.Notification, 4)}
	l := newListener(source, "document_created", NewDispatcher(svc, testLogger), testLogger, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- l.Run(ctx) }()

	source.ch <- &pq.Notification{Channel: "document_created", Extra: "events/ev-1/channels/c/messages/m-1"}
	<-svc.done
	source.ch <- nil
	source.ch <- &pq.Notification{Channel: "document_created", Extra: "events/ev-1/channels/c/messages/m-2"}
	<-svc.done

	cancel()
	require.NoError(t, <-result)

	assert.Equal(t, "document_created", source.listened)
	assert.True(t, source.closed)
	assert.Equal(t, []call{{"ev-1", "c", "m-1"}, {"ev-1", "c", "m-2"}}, svc.calls)
}

func TestListener_Run_ListenError(t *testing.T) {
	source := &fakeSource{ch: make(chan *pq.Notification), listenErr: errors.New("no connection")}
	l := newListener(source, "document_created", NewDispatcher(&fakeNotificationService{}, testLogger), testLogger, time.Hour)

	err := l.Run(context.Background())
	assert.ErrorIs(t, err, source.listenErr)
}

func TestListener_Run_ClosedChannel(t *testing.T) {
	source := &fakeSource{ch: make(chan *pq.Notification)}
	close(source.ch)
	l := newListener(source, "document_created", NewDispatcher(&fakeNotificationService{}, testLogger), testLogger, time.Hour)

	assert.Error(t, l.Run(context.Background()))
}
