package service

import (
	"bytes"
	"sort"
	"sync"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/notify"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
	"github.com/mwalczyk/sleep-sentinel/internal/store"
)

// bedtimeReminderID identifies the recurring bedtime notification.
const bedtimeReminderID = "bedtime.reminder"

// reminderLeadMinutes is how long before target bedtime the reminder fires.
const reminderLeadMinutes = 10

// NightService owns the canonical night collection, settings and sync cursor
// under single-writer discipline. Every mutation path (delta sync, motion
// fusion, user edits, reset) enters through its mutex.
type NightService interface {
	// Bootstrap loads persisted state; missing or undecodable state is a
	// cold start.
	Bootstrap() error
	// Nights returns a copy of the collection, sorted by date descending.
	Nights() []domain.Night
	Settings() domain.Settings
	// UpdateSettings applies the request, persists and reschedules the
	// bedtime reminder.
	UpdateSettings(req domain.UpdateSettingsRequest) (domain.Settings, error)
	// CursorSnapshot returns the stored cursor and the current reset
	// generation. A delta computed against this snapshot is applied via
	// ApplyDelta with the same generation.
	CursorSnapshot() ([]byte, uint64)
	// ApplyDelta runs samples through normalization, aggregation and
	// reconciliation, replaces the cursor and persists the payload as a
	// unit. It returns the number of segments that survived normalization,
	// so awake and degenerate samples do not count as applied. It rejects
	// deltas from before a reset with ErrSyncCancelled. A delta with no
	// samples and an unchanged cursor leaves collection and persisted
	// payload untouched.
	ApplyDelta(gen uint64, samples []source.Sample, newCursor []byte) (int, error)
	// UpsertInferred applies a motion-inferred candidate night: it only
	// fills fields the existing night lacks, and marks the night inferred.
	UpsertInferred(night domain.Night) error
	// ResetAll clears nights and cursor, bumps the generation so in-flight
	// deltas cannot commit, and wipes persisted state.
	ResetAll() error
	// Subscribe returns a channel receiving a tick after every mutation.
	Subscribe() <-chan struct{}
}

type nightService struct {
	mu         sync.Mutex
	nights     []domain.Night
	settings   domain.Settings
	cursor     []byte
	generation uint64
	observers  []chan struct{}

	store     store.PersistentStore
	scheduler notify.Scheduler
}

// NewNightService creates the single-writer night store.
func NewNightService(st store.PersistentStore, scheduler notify.Scheduler) NightService {
	return &nightService{
		settings:  domain.DefaultSettings(),
		store:     st,
		scheduler: scheduler,
	}
}

func (s *nightService) Bootstrap() error {
	payload, err := s.store.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if payload != nil {
		s.nights = payload.Nights
		s.settings = payload.Settings
		s.cursor = payload.Cursor
		s.sortNightsLocked()
	}
	s.scheduleReminderLocked()
	return nil
}

func (s *nightService) Nights() []domain.Night {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Night, len(s.nights))
	copy(out, s.nights)
	return out
}

func (s *nightService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *nightService) UpdateSettings(req domain.UpdateSettingsRequest) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.TargetBedtime != nil {
		t, err := domain.ParseTimeOfDay(*req.TargetBedtime)
		if err != nil {
			return domain.Settings{}, err
		}
		s.settings.TargetBedtime = t
	}
	if req.TargetWake != nil {
		t, err := domain.ParseTimeOfDay(*req.TargetWake)
		if err != nil {
			return domain.Settings{}, err
		}
		s.settings.TargetWake = t
	}
	if req.MidpointToleranceMinutes != nil {
		if *req.MidpointToleranceMinutes < 0 {
			return domain.Settings{}, domain.ErrInvalidInput
		}
		s.settings.MidpointToleranceMinutes = *req.MidpointToleranceMinutes
	}
	if req.RemindersEnabled != nil {
		s.settings.RemindersEnabled = *req.RemindersEnabled
	}

	if err := s.persistLocked(); err != nil {
		return domain.Settings{}, err
	}
	s.scheduleReminderLocked()
	s.notifyLocked()
	return s.settings, nil
}

func (s *nightService) CursorSnapshot() ([]byte, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := make([]byte, len(s.cursor))
	copy(cur, s.cursor)
	return cur, s.generation
}

func (s *nightService) ApplyDelta(gen uint64, samples []source.Sample, newCursor []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return 0, domain.ErrSyncCancelled
	}

	cursorChanged := !bytes.Equal(newCursor, s.cursor)
	if len(samples) == 0 && !cursorChanged {
		return 0, nil
	}

	segments := NormalizeSamples(samples)
	candidates := AggregateSegments(segments)
	if len(candidates) > 0 {
		for _, c := range candidates {
			s.upsertLocked(c)
		}
		s.sortNightsLocked()
	}

	s.cursor = newCursor
	if err := s.persistLocked(); err != nil {
		return 0, err
	}
	s.notifyLocked()
	return len(segments), nil
}

func (s *nightService) UpsertInferred(night domain.Night) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := night.Date.Format(nightKeyLayout)
	if idx := s.indexOfLocked(key); idx >= 0 {
		s.nights[idx] = mergeInferred(s.nights[idx], night)
	} else {
		night.Inferred = true
		s.nights = append(s.nights, night)
	}
	s.sortNightsLocked()

	if err := s.persistLocked(); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

func (s *nightService) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nights = nil
	s.cursor = nil
	s.generation++

	if err := s.store.Reset(); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

func (s *nightService) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.observers = append(s.observers, ch)
	return ch
}

// merge reconciles a freshly aggregated night into an existing one. The old
// identity is kept; for every optional field the new value wins when present;
// the inferred flag is OR-monotonic and never reverts to false.
func merge(old, new domain.Night) domain.Night {
	return domain.Night{
		ID:         old.ID,
		Date:       new.Date,
		InBed:      coalesce(new.InBed, old.InBed),
		Asleep:     coalesce(new.Asleep, old.Asleep),
		Bedtime:    coalesce(new.Bedtime, old.Bedtime),
		Wake:       coalesce(new.Wake, old.Wake),
		Midpoint:   coalesce(new.Midpoint, old.Midpoint),
		Efficiency: coalesce(new.Efficiency, old.Efficiency),
		Inferred:   old.Inferred || new.Inferred,
	}
}

// mergeInferred is the precedence-reversed merge used by motion fusion:
// low-confidence estimates only fill fields the night does not already have,
// never overwrite measured data. Efficiency is recomputed from the merged
// durations.
func mergeInferred(existing, inferred domain.Night) domain.Night {
	out := domain.Night{
		ID:       existing.ID,
		Date:     existing.Date,
		InBed:    existing.InBed,
		Asleep:   coalesce(existing.Asleep, inferred.Asleep),
		Bedtime:  coalesce(existing.Bedtime, inferred.Bedtime),
		Wake:     coalesce(existing.Wake, inferred.Wake),
		Midpoint: coalesce(existing.Midpoint, inferred.Midpoint),
		Inferred: true,
	}
	out.Efficiency = domain.ComputeEfficiency(out.Asleep, out.InBed)
	return out
}

func coalesce[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func (s *nightService) upsertLocked(night domain.Night) {
	key := night.Date.Format(nightKeyLayout)
	if idx := s.indexOfLocked(key); idx >= 0 {
		s.nights[idx] = merge(s.nights[idx], night)
		return
	}
	s.nights = append(s.nights, night)
}

func (s *nightService) indexOfLocked(key string) int {
	for i, n := range s.nights {
		if n.Date.Format(nightKeyLayout) == key {
			return i
		}
	}
	return -1
}

func (s *nightService) sortNightsLocked() {
	sort.SliceStable(s.nights, func(i, j int) bool {
		return s.nights[i].Date.After(s.nights[j].Date)
	})
}

func (s *nightService) persistLocked() error {
	return s.store.Save(domain.Payload{
		Nights:   s.nights,
		Settings: s.settings,
		Cursor:   s.cursor,
	})
}

func (s *nightService) notifyLocked() {
	for _, ch := range s.observers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *nightService) scheduleReminderLocked() {
	if s.scheduler == nil {
		return
	}
	if !s.settings.RemindersEnabled {
		s.scheduler.Cancel(bedtimeReminderID)
		return
	}
	at := minutesBefore(s.settings.TargetBedtime, reminderLeadMinutes)
	s.scheduler.ScheduleDaily(at,
		"Gentle bedtime reminder",
		"Begin winding down for better sleep regularity.",
		bedtimeReminderID)
}

func minutesBefore(t domain.TimeOfDay, lead int) domain.TimeOfDay {
	m := ((t.MinutesOfDay()-lead)%1440 + 1440) % 1440
	return domain.TimeOfDay{Hour: m / 60, Minute: m % 60}
}
