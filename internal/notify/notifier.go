// Package notify provides the notification scheduler collaborator used for
// bedtime reminders.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
)

// Scheduler schedules recurring local notifications.
type Scheduler interface {
	RequestPermission(ctx context.Context) error
	// ScheduleDaily arranges a notification at the given wall-clock time
	// every day, replacing any schedule with the same id.
	ScheduleDaily(at domain.TimeOfDay, title, body, id string)
	// Cancel removes the schedule with the given id, if any.
	Cancel(id string)
}

// DesktopScheduler delivers notifications through the desktop notification
// daemon. Each schedule runs its own timer goroutine.
type DesktopScheduler struct {
	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewDesktopScheduler() *DesktopScheduler {
	return &DesktopScheduler{cancels: make(map[string]context.CancelFunc)}
}

// RequestPermission is a no-op on desktop; delivery errors surface per
// notification instead.
func (s *DesktopScheduler) RequestPermission(ctx context.Context) error {
	return nil
}

func (s *DesktopScheduler) ScheduleDaily(at domain.TimeOfDay, title, body, id string) {
	s.mu.Lock()
	if cancel, ok := s.cancels[id]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[id] = cancel
	s.mu.Unlock()

	go func() {
		for {
			wait := untilNext(at, time.Now())
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				if err := beeep.Notify(title, body, ""); err != nil {
					log.Printf("notification %q failed: %v", id, err)
				}
			}
		}
	}()
}

func (s *DesktopScheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[id]; ok {
		cancel()
		delete(s.cancels, id)
	}
}

// untilNext returns the duration until the next wall-clock occurrence of at.
func untilNext(at domain.TimeOfDay, now time.Time) time.Duration {
	next := at.On(now)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// NoopScheduler discards all schedules. Used when reminders are not wanted,
// e.g. in tests or headless deployments.
type NoopScheduler struct{}

func (NoopScheduler) RequestPermission(ctx context.Context) error       { return nil }
func (NoopScheduler) ScheduleDaily(at domain.TimeOfDay, _, _, _ string) {}
func (NoopScheduler) Cancel(id string)                                  {}
