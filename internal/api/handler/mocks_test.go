package handler

import (
	"context"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
)

// MockNightService is a mock implementation of service.NightService
type MockNightService struct {
	nights         []domain.Night
	settings       domain.Settings
	updateFunc     func(req domain.UpdateSettingsRequest) (domain.Settings, error)
	updateRequests []domain.UpdateSettingsRequest
}

func NewMockNightService() *MockNightService {
	return &MockNightService{settings: domain.DefaultSettings()}
}

func (m *MockNightService) Bootstrap() error          { return nil }
func (m *MockNightService) Nights() []domain.Night    { return m.nights }
func (m *MockNightService) Settings() domain.Settings { return m.settings }

func (m *MockNightService) UpdateSettings(req domain.UpdateSettingsRequest) (domain.Settings, error) {
	m.updateRequests = append(m.updateRequests, req)
	if m.updateFunc != nil {
		return m.updateFunc(req)
	}
	return m.settings, nil
}

func (m *MockNightService) CursorSnapshot() ([]byte, uint64) { return nil, 0 }

func (m *MockNightService) ApplyDelta(gen uint64, samples []source.Sample, newCursor []byte) (int, error) {
	return len(samples), nil
}

func (m *MockNightService) UpsertInferred(night domain.Night) error { return nil }
func (m *MockNightService) ResetAll() error                         { return nil }
func (m *MockNightService) Subscribe() <-chan struct{}              { return make(chan struct{}) }

// MockSyncService is a mock implementation of service.SyncService
type MockSyncService struct {
	fetchFunc func(ctx context.Context) (*domain.SyncResponse, error)
	resetErr  error
	resets    int
}

func (m *MockSyncService) FetchDelta(ctx context.Context) (*domain.SyncResponse, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return &domain.SyncResponse{}, nil
}

func (m *MockSyncService) ResetAll() error {
	m.resets++
	return m.resetErr
}

// MockAnalyticsService is a mock implementation of service.AnalyticsService
type MockAnalyticsService struct {
	summaryFunc func(ctx context.Context, windowDays, startIndex int) *domain.WeeklySummary
}

func (m *MockAnalyticsService) Summary(ctx context.Context, windowDays, startIndex int) *domain.WeeklySummary {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, windowDays, startIndex)
	}
	return nil
}

func (m *MockAnalyticsService) CurrentAndPrevious(ctx context.Context) (*domain.WeeklySummary, *domain.WeeklySummary) {
	return m.Summary(ctx, 7, 0), m.Summary(ctx, 7, 7)
}

// MockInsightsService is a mock implementation of service.InsightsService
type MockInsightsService struct {
	generateFunc func(ctx context.Context) (*domain.InsightsResponse, error)
}

func (m *MockInsightsService) Generate(ctx context.Context) (*domain.InsightsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx)
	}
	return &domain.InsightsResponse{}, nil
}
