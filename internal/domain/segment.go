package domain

import "time"

// SegmentType classifies a normalized sleep-event segment.
// @Description Segment category: in-bed, one of the asleep stages, or a
// motion-derived activity marker.
type SegmentType string

const (
	SegmentInBed             SegmentType = "inBed"
	SegmentAsleepUnspecified SegmentType = "asleepUnspecified"
	SegmentAsleepCore        SegmentType = "asleepCore"
	SegmentAsleepREM         SegmentType = "asleepREM"
	SegmentAsleepDeep        SegmentType = "asleepDeep"
	SegmentStationary        SegmentType = "activityStationary"
	SegmentMoving            SegmentType = "activityMoving"
)

// IsAsleep reports whether the segment counts toward the asleep total.
func (t SegmentType) IsAsleep() bool {
	switch t {
	case SegmentAsleepUnspecified, SegmentAsleepCore, SegmentAsleepREM, SegmentAsleepDeep:
		return true
	}
	return false
}

// Segment is a uniform, source-tagged sleep-event sample. Segments are
// ephemeral: they exist between normalization and aggregation and are never
// persisted.
type Segment struct {
	Type   SegmentType `json:"type"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Source string      `json:"source"`
}

// Duration returns the segment length. End is always >= Start for
// normalized segments.
func (s Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
