package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultLookbackDays bounds every delta query regardless of cursor age.
	DefaultLookbackDays = 14

	// DefaultFetchTimeout is the advisory bound on one delta round trip.
	DefaultFetchTimeout = 30 * time.Second

	// maxFetchRetries bounds transient-failure retries per fetch.
	maxFetchRetries = 3
)

// SyncService drives incremental delta fetches against the external sample
// source. At most one fetch is in flight at a time; a concurrent call fails
// with ErrSyncInProgress rather than interleaving cursors.
type SyncService interface {
	// FetchDelta performs one cursor-bounded delta query and applies the
	// result through the night service. Transient source failures are
	// retried with exponential backoff; a terminal failure is surfaced as
	// ErrSourceUnavailable.
	FetchDelta(ctx context.Context) (*domain.SyncResponse, error)
	// ResetAll cancels any in-flight fetch, invalidates its effect on the
	// cursor and clears all state.
	ResetAll() error
}

type syncService struct {
	nights       NightService
	health       source.HealthSampleSource
	lookbackDays int
	fetchTimeout time.Duration
	now          func() time.Time

	mu             sync.Mutex
	inFlight       bool
	cancelInFlight context.CancelFunc
}

// NewSyncService creates a SyncService with the given lookback bound.
func NewSyncService(nights NightService, health source.HealthSampleSource, lookbackDays int) SyncService {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &syncService{
		nights:       nights,
		health:       health,
		lookbackDays: lookbackDays,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
	}
}

func (s *syncService) FetchDelta(ctx context.Context) (*domain.SyncResponse, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, domain.ErrSyncInProgress
	}
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	s.inFlight = true
	s.cancelInFlight = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.inFlight = false
		s.cancelInFlight = nil
		s.mu.Unlock()
	}()

	tracer := otel.Tracer("sleep-sentinel/sync")
	ctx, span := tracer.Start(ctx, "SyncService.FetchDelta",
		trace.WithAttributes(attribute.Int("sync.lookback_days", s.lookbackDays)),
	)
	defer span.End()

	cur, gen := s.nights.CursorSnapshot()
	windowEnd := s.now()
	windowStart := windowEnd.AddDate(0, 0, -s.lookbackDays)

	var samples []source.Sample
	var newCursor []byte
	op := func() error {
		var err error
		samples, newCursor, err = s.health.QueryDelta(ctx, windowStart, windowEnd, cur)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, domain.ErrSyncCancelled
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	applied, err := s.nights.ApplyDelta(gen, samples, newCursor)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sync.applied_samples", applied))
	return &domain.SyncResponse{
		AppliedSamples: applied,
		Nights:         len(s.nights.Nights()),
	}, nil
}

func (s *syncService) ResetAll() error {
	s.mu.Lock()
	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	s.mu.Unlock()
	return s.nights.ResetAll()
}
