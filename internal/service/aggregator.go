package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
)

const nightKeyLayout = "2006-01-02"

// segmentTypeFor maps a raw sample category onto the uniform segment type.
// Awake samples carry no sleep contribution and are dropped.
func segmentTypeFor(c source.SampleCategory) (domain.SegmentType, bool) {
	switch c {
	case source.CategoryInBed:
		return domain.SegmentInBed, true
	case source.CategoryAsleepUnspecified:
		return domain.SegmentAsleepUnspecified, true
	case source.CategoryAsleepCore:
		return domain.SegmentAsleepCore, true
	case source.CategoryAsleepDeep:
		return domain.SegmentAsleepDeep, true
	case source.CategoryAsleepREM:
		return domain.SegmentAsleepREM, true
	}
	return "", false
}

// NormalizeSamples converts raw source samples into uniform segments,
// dropping categories with no sleep contribution and degenerate intervals.
func NormalizeSamples(samples []source.Sample) []domain.Segment {
	segments := make([]domain.Segment, 0, len(samples))
	for _, s := range samples {
		t, ok := segmentTypeFor(s.Category)
		if !ok {
			continue
		}
		if s.End.Before(s.Start) {
			continue
		}
		segments = append(segments, domain.Segment{
			Type:   t,
			Start:  s.Start,
			End:    s.End,
			Source: s.Source,
		})
	}
	return segments
}

// NightKey returns the calendar date a segment start is attributed to. Starts
// before noon roll back to the previous day, so an episode running 23:30 to
// 07:00 groups entirely under the earlier date.
func NightKey(t time.Time) string {
	if t.Hour() < 12 {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(nightKeyLayout)
}

// nightAnchor converts a night key back to its local-midnight anchor.
func nightAnchor(key string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(nightKeyLayout, key, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AggregateSegments buckets segments into candidate nights, at most one per
// distinct night key. Within a bucket, inBed sums the in-bed segments, asleep
// sums all asleep-stage segments, bedtime is the earliest segment start and
// wake the latest segment end.
func AggregateSegments(segments []domain.Segment) []domain.Night {
	if len(segments) == 0 {
		return nil
	}

	buckets := make(map[string][]domain.Segment)
	for _, seg := range segments {
		key := NightKey(seg.Start)
		buckets[key] = append(buckets[key], seg)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	nights := make([]domain.Night, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]

		var inBed, asleep time.Duration
		bedtime := bucket[0].Start
		wake := bucket[0].End
		for _, seg := range bucket {
			if seg.Type == domain.SegmentInBed {
				inBed += seg.Duration()
			}
			if seg.Type.IsAsleep() {
				asleep += seg.Duration()
			}
			if seg.Start.Before(bedtime) {
				bedtime = seg.Start
			}
			if seg.End.After(wake) {
				wake = seg.End
			}
		}

		night := domain.Night{
			ID:      uuid.New(),
			Date:    nightAnchor(key, bucket[0].Start.Location()),
			Bedtime: &bedtime,
			Wake:    &wake,
		}
		if inBed > 0 {
			night.InBed = &inBed
		}
		if asleep > 0 {
			night.Asleep = &asleep
		}
		night.Midpoint = domain.ComputeMidpoint(night.Bedtime, night.Asleep)
		night.Efficiency = domain.ComputeEfficiency(night.Asleep, night.InBed)

		nights = append(nights, night)
	}
	return nights
}
