package service

import (
	"context"
	"time"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
)

// MockStore is a mock implementation of store.PersistentStore
type MockStore struct {
	payload *domain.Payload
	saves   []domain.Payload
	resets  int
	loadErr error
	saveErr error
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Load() (*domain.Payload, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.payload, nil
}

func (m *MockStore) Save(payload domain.Payload) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves = append(m.saves, payload)
	return nil
}

func (m *MockStore) Reset() error {
	m.resets++
	return nil
}

// MockHealthSource is a scripted implementation of source.HealthSampleSource
type MockHealthSource struct {
	queryFunc func(ctx context.Context, windowStart, windowEnd time.Time, cur []byte) ([]source.Sample, []byte, error)
	calls     int
}

func (m *MockHealthSource) RequestAuthorization(ctx context.Context) (bool, error) {
	return true, nil
}

func (m *MockHealthSource) QueryDelta(ctx context.Context, windowStart, windowEnd time.Time, cur []byte) ([]source.Sample, []byte, error) {
	m.calls++
	if m.queryFunc != nil {
		return m.queryFunc(ctx, windowStart, windowEnd, cur)
	}
	return nil, cur, nil
}

// MockMotionSource is a scripted implementation of source.MotionSampleSource
type MockMotionSource struct {
	activities []source.Activity
	err        error
}

func (m *MockMotionSource) QueryActivities(ctx context.Context, start, end time.Time) ([]source.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.activities, nil
}

// MockScheduler records reminder scheduling calls
type MockScheduler struct {
	scheduled map[string]domain.TimeOfDay
	cancelled []string
}

func NewMockScheduler() *MockScheduler {
	return &MockScheduler{scheduled: make(map[string]domain.TimeOfDay)}
}

func (m *MockScheduler) RequestPermission(ctx context.Context) error {
	return nil
}

func (m *MockScheduler) ScheduleDaily(at domain.TimeOfDay, title, body, id string) {
	m.scheduled[id] = at
}

func (m *MockScheduler) Cancel(id string) {
	m.cancelled = append(m.cancelled, id)
	delete(m.scheduled, id)
}

// MockLLM is a scripted implementation of llm.NarrativeLLM
type MockLLM struct {
	insights *domain.NarrativeInsights
	err      error
	lastCtx  *domain.InsightsContext
}

func (m *MockLLM) GenerateNarrative(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.NarrativeInsights, error) {
	m.lastCtx = insightsCtx
	if m.err != nil {
		return nil, m.err
	}
	if m.insights != nil {
		return m.insights, nil
	}
	return &domain.NarrativeInsights{Summary: "ok"}, nil
}

func durPtr(d time.Duration) *time.Duration { return &d }
func timePtr(t time.Time) *time.Time        { return &t }
func floatPtr(f float64) *float64           { return &f }
func strPtr(s string) *string               { return &s }
func intPtr(i int) *int                     { return &i }
func boolPtr(b bool) *bool                  { return &b }
