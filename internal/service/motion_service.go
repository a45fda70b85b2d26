package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
)

const (
	// motionAcceptWindow bounds how far from the target an inferred onset or
	// wake may fall and still be accepted.
	motionAcceptWindow = 90 * time.Minute

	// motionQueryLead extends the activity query before the target bedtime.
	motionQueryLead = 30 * time.Minute

	// minInferredInterval floors the inferred asleep duration.
	minInferredInterval = time.Minute
)

// MotionService infers a low-confidence sleep onset and wake from motion
// activity near the configured targets and feeds the result into the night
// store as an inferred update. The query runs off the single-writer context;
// only the final upsert re-enters it.
type MotionService interface {
	RunFusion(ctx context.Context) error
}

type motionService struct {
	nights NightService
	motion source.MotionSampleSource
	now    func() time.Time
}

// NewMotionService creates a new MotionService.
func NewMotionService(nights NightService, motion source.MotionSampleSource) MotionService {
	return &motionService{nights: nights, motion: motion, now: time.Now}
}

func (s *motionService) RunFusion(ctx context.Context) error {
	settings := s.nights.Settings()
	now := s.now()

	targetBed := settings.TargetBedtime.On(now)
	targetWake := settings.TargetWake.On(now.Add(8 * time.Hour))

	activities, err := s.motion.QueryActivities(ctx,
		targetBed.Add(-motionQueryLead),
		targetWake.Add(motionAcceptWindow))
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		return nil
	}

	onset := firstNear(activities, targetBed, func(a source.Activity) bool { return a.Stationary })
	wake := firstNear(activities, targetWake, source.Activity.Moving)
	if onset == nil && wake == nil {
		return nil
	}

	onsetOr := targetBed
	if onset != nil {
		onsetOr = *onset
	}
	// Without a detected wake the estimate stays at the floor rather than
	// assuming the user slept through to the target wake.
	interval := minInferredInterval
	if wake != nil {
		if d := wake.Sub(onsetOr); d > interval {
			interval = d
		}
	}

	night := domain.Night{
		ID:       uuid.New(),
		Date:     midnightOf(targetBed),
		Asleep:   &interval,
		Bedtime:  onset,
		Wake:     wake,
		Midpoint: domain.ComputeMidpoint(&onsetOr, &interval),
		Inferred: true,
	}
	return s.nights.UpsertInferred(night)
}

// firstNear returns the earliest matching activity timestamp within the
// accept window of the target.
func firstNear(activities []source.Activity, target time.Time, match func(source.Activity) bool) *time.Time {
	var candidates []time.Time
	for _, a := range activities {
		if match(a) {
			candidates = append(candidates, a.Timestamp)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })

	for _, t := range candidates {
		diff := t.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff <= motionAcceptWindow {
			return &t
		}
	}
	return nil
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
