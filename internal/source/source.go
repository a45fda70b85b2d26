// Package source defines the external sample-source collaborators consumed by
// the core pipeline, plus the journal-backed implementation used by the API
// binary.
package source

import (
	"context"
	"time"
)

// SampleCategory is the raw sleep-analysis category reported by a health
// sample source. Values mirror the upstream category enum.
type SampleCategory int

const (
	CategoryInBed SampleCategory = iota
	CategoryAsleepUnspecified
	CategoryAwake
	CategoryAsleepCore
	CategoryAsleepDeep
	CategoryAsleepREM
)

var categoryNames = map[string]SampleCategory{
	"inBed":             CategoryInBed,
	"asleepUnspecified": CategoryAsleepUnspecified,
	"awake":             CategoryAwake,
	"asleepCore":        CategoryAsleepCore,
	"asleepDeep":        CategoryAsleepDeep,
	"asleepREM":         CategoryAsleepREM,
}

// CategoryFromString maps the wire name of a category to its value.
func CategoryFromString(s string) (SampleCategory, bool) {
	c, ok := categoryNames[s]
	return c, ok
}

// Sample is one raw sleep sample as delivered by a HealthSampleSource.
type Sample struct {
	Category SampleCategory
	Start    time.Time
	End      time.Time
	Source   string
}

// HealthSampleSource is the external measured-sample collaborator. QueryDelta
// returns only samples past the given opaque cursor that fall inside the
// window, plus the replacement cursor.
type HealthSampleSource interface {
	RequestAuthorization(ctx context.Context) (bool, error)
	QueryDelta(ctx context.Context, windowStart, windowEnd time.Time, cur []byte) ([]Sample, []byte, error)
}

// Activity is one motion-activity sample.
type Activity struct {
	Timestamp  time.Time
	Stationary bool
	Walking    bool
	Running    bool
	Automotive bool
	Cycling    bool
}

// Moving reports whether the activity indicates locomotion of any kind.
func (a Activity) Moving() bool {
	return a.Walking || a.Running || a.Automotive || a.Cycling
}

// MotionSampleSource is the external low-confidence motion collaborator.
type MotionSampleSource interface {
	QueryActivities(ctx context.Context, start, end time.Time) ([]Activity, error)
}
