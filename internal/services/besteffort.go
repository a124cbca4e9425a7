package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"eventradar/internal/metrics"
)

// subFailure describes one swallowed sub-operation failure.
type subFailure struct {
	Operation  string
	DocumentID string
	Err        error
}

// bestEffort runs sub-operations whose failures are logged and recorded but
// never returned to the caller. It is safe for concurrent use.
type bestEffort struct {
	logger *slog.Logger

	mu       sync.Mutex
	failures []subFailure
}

func newBestEffort(logger *slog.Logger) *bestEffort {
	return &bestEffort{logger: logger}
}

// Run executes fn and swallows its error after logging it with the operation and document ID.
func (b *bestEffort) Run(ctx context.Context, operation, documentID string, fn func(ctx context.Context) error) {
	err := fn(ctx)
	if err == nil {
		return
	}
	b.mu.Lock()
	b.failures = append(b.failures, subFailure{Operation: operation, DocumentID: documentID, Err: err})
	b.mu.Unlock()

	metrics.BestEffortFailures.WithLabelValues(operation).Inc()
	b.logger.ErrorContext(ctx, "best-effort operation failed",
		"operation", operation,
		"document_id", documentID,
		"err", err,
	)
}

// Go schedules Run on g. The scheduled function always reports success to g.
func (b *bestEffort) Go(ctx context.Context, g *errgroup.Group, operation, documentID string, fn func(ctx context.Context) error) {
	g.Go(func() error {
		b.Run(ctx, operation, documentID, fn)
		return nil
	})
}

// Failures returns a copy of the failures recorded so far.
func (b *bestEffort) Failures() []subFailure {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]subFailure, len(b.failures))
	copy(out, b.failures)
	return out
}
