package source

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ActivityLog is an in-process MotionSampleSource fed by the ingest API.
type ActivityLog struct {
	mu         sync.Mutex
	activities []Activity
}

// NewActivityLog creates an empty activity log.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

// Append records motion activities and returns the number accepted.
func (l *ActivityLog) Append(activities ...Activity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.activities = append(l.activities, activities...)
	return len(activities)
}

// QueryActivities returns the recorded activities with timestamps inside
// [start, end], ordered by timestamp ascending.
func (l *ActivityLog) QueryActivities(ctx context.Context, start, end time.Time) ([]Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Activity
	for _, a := range l.activities {
		if a.Timestamp.Before(start) || a.Timestamp.After(end) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
