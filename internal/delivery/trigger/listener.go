package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"eventradar/internal/domain"
)

// DefaultPingInterval is how often an idle listener checks its connection.
const DefaultPingInterval = 90 * time.Second

// Dispatcher routes created-document paths to the handler for their collection.
type Dispatcher struct {
	notifications domain.NotificationService
	logger        *slog.Logger
}

func NewDispatcher(notifications domain.NotificationService, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{notifications: notifications, logger: logger}
}

// Handle processes one created document. Paths outside
// events/{e}/channels/{c}/messages/{m} are ignored.
func (d *Dispatcher) Handle(ctx context.Context, path string) error {
	eventID, channelID, messageID, ok := domain.ParseMessagePath(path)
	if !ok {
		d.logger.DebugContext(ctx, "ignoring created document", "path", path)
		return nil
	}
	if err := d.notifications.HandleMessageCreated(ctx, eventID, channelID, messageID); err != nil {
		return fmt.Errorf("message created %s: %w", path, err)
	}
	return nil
}

// notificationSource is the subset of *pq.Listener used by Listener.
type notificationSource interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Listener consumes NOTIFY payloads from PostgreSQL and hands them to a Dispatcher.
type Listener struct {
	source       notificationSource
	channel      string
	dispatcher   *Dispatcher
	logger       *slog.Logger
	pingInterval time.Duration
}

// NewListener opens a pq listener on dsn. It reconnects on its own; events
// raised while disconnected are lost.
func NewListener(dsn, channel string, dispatcher *Dispatcher, logger *slog.Logger) *Listener {
	pl := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			logger.Warn("trigger listener connection problem", "channel", channel, "err", err)
		case pq.ListenerEventReconnected:
			logger.Info("trigger listener reconnected", "channel", channel)
		}
	})
	return newListener(pl, channel, dispatcher, logger, DefaultPingInterval)
}

func newListener(source notificationSource, channel string, dispatcher *Dispatcher, logger *slog.Logger, pingInterval time.Duration) *Listener {
	return &Listener{
		source:       source,
		channel:      channel,
		dispatcher:   dispatcher,
		logger:       logger.With("channel", channel),
		pingInterval: pingInterval,
	}
}

// Run blocks until ctx is cancelled or the notification channel closes.
// Handler failures are logged and do not stop the loop.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.source.Listen(l.channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	defer l.source.Close()
	l.logger.InfoContext(ctx, "trigger listener started")

	notifications := l.source.NotificationChannel()
	ticker := time.NewTicker(l.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.InfoContext(ctx, "trigger listener stopped")
			return nil
		case n, ok := <-notifications:
			if !ok {
				return errors.New("notification channel closed")
			}
			if n == nil {
				// Sent after a reconnect.
				l.logger.WarnContext(ctx, "trigger listener resumed, notifications may have been missed")
				continue
			}
			if err := l.dispatcher.Handle(ctx, n.Extra); err != nil {
				l.logger.ErrorContext(ctx, "trigger handler failed", "path", n.Extra, "err", err)
			}
		case <-ticker.C:
			if err := l.source.Ping(); err != nil {
				l.logger.WarnContext(ctx, "trigger listener ping failed", "err", err)
			}
		}
	}
}
