package pushqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/metrics"
)

const (
	defaultAttemptTimeout = 15 * time.Second
	defaultDrainPause     = 250 * time.Millisecond
)

// ServiceParams configures the queue service.
type ServiceParams struct {
	Repo           Repository
	Sender         Sender
	Logger         *logger.Logger
	Metrics        *metrics.QueueMetrics
	AttemptTimeout time.Duration
	DrainPause     time.Duration
	Now            func() time.Time
}

// Service buffers daily summaries while offline and drains them once
// connectivity returns. Items are processed strictly in enqueue order,
// one at a time, with a pause between attempts so a freshly recovered
// endpoint is not flooded.
type Service struct {
	repo           Repository
	sender         Sender
	logg           *logger.Logger
	metrics        *metrics.QueueMetrics
	attemptTimeout time.Duration
	drainPause     time.Duration
	now            func() time.Time
}

// NewService wires a queue service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("queue repository required")
	}
	if params.Sender == nil {
		return nil, fmt.Errorf("sender required")
	}
	timeout := params.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	pause := params.DrainPause
	if pause < 0 {
		pause = defaultDrainPause
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:           params.Repo,
		sender:         params.Sender,
		logg:           params.Logger,
		metrics:        params.Metrics,
		attemptTimeout: timeout,
		drainPause:     pause,
		now:            now,
	}, nil
}

// Enqueue buffers one payload. Enqueuing a key that is already queued
// is a no-op; the stored payload for a key never changes in place.
func (s *Service) Enqueue(ctx context.Context, payload SyncPayload) error {
	if payload.IdempotencyKey == "" {
		return fmt.Errorf("idempotency key required")
	}
	serialized, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializing payload %s: %w", payload.IdempotencyKey, err)
	}
	item := &models.PushQueueItem{
		IdempotencyKey: payload.IdempotencyKey,
		Payload:        serialized,
		EnqueuedAt:     s.now(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return fmt.Errorf("enqueuing %s: %w", payload.IdempotencyKey, err)
	}
	s.updateDepth(ctx)
	return nil
}

// Drain attempts every pending item once, in order. Successes are
// removed; failures stay pending for the next cycle and are never
// fatal. A canceled context (connectivity dropped mid-drain) stops
// the cycle and leaves the remainder untouched.
func (s *Service) Drain(ctx context.Context) error {
	start := s.now()
	items, err := s.repo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("listing pending items: %w", err)
	}

	// Bookkeeping must survive a mid-cycle cancellation: an item that
	// was delivered right before connectivity dropped still has to be
	// removed, or the next drain would resend it.
	bookCtx := context.WithoutCancel(ctx)

	var attemptErrs error
	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && s.drainPause > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(s.drainPause):
			}
		}

		if err := s.attempt(ctx, item); err != nil {
			attemptErrs = multierr.Append(attemptErrs, err)
			s.metrics.IncDelivery("failure")
			if recErr := s.repo.RecordFailure(bookCtx, item.IdempotencyKey, err, s.now()); recErr != nil && s.logg != nil {
				s.logg.Error(ctx, "failed to record delivery failure", recErr)
			}
			if s.logg != nil {
				itemCtx := s.logg.WithField(ctx, "idempotency_key", item.IdempotencyKey)
				s.logg.Warn(itemCtx, "delivery failed; item stays pending")
			}
			continue
		}

		if err := s.repo.Delete(bookCtx, item.IdempotencyKey); err != nil {
			attemptErrs = multierr.Append(attemptErrs, fmt.Errorf("removing delivered %s: %w", item.IdempotencyKey, err))
			continue
		}
		s.metrics.IncDelivery("success")
	}

	s.metrics.ObserveDrain(s.now().Sub(start))
	s.updateDepth(bookCtx)

	// Delivery failures are expected while offline; surface them to
	// the caller for logging, never as a fatal condition.
	return attemptErrs
}

// attempt delivers one item under the per-attempt timeout so a hung
// endpoint cannot stall the queue forever.
func (s *Service) attempt(ctx context.Context, item models.PushQueueItem) error {
	attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()
	return s.sender.Send(attemptCtx, item)
}

// PendingCount reports the current queue depth.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) updateDepth(ctx context.Context) {
	if count, err := s.repo.Count(ctx); err == nil {
		s.metrics.SetDepth(count)
	}
}
