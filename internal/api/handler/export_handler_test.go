package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/export"
)

func TestExportHandler_Nights(t *testing.T) {
	svc := NewMockNightService()
	asleep := 7 * time.Hour
	svc.nights = []domain.Night{
		{ID: uuid.New(), Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Asleep: &asleep},
	}
	h := NewExportHandler(svc, &MockAnalyticsService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/export/nights.csv", nil)
	resp := httptest.NewRecorder()
	h.Nights(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if !strings.HasPrefix(resp.Body.String(), export.NightsHeader) {
		t.Fatalf("unexpected body: %q", resp.Body.String())
	}
}

func TestExportHandler_Weekly(t *testing.T) {
	end := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	analytics := &MockAnalyticsService{
		summaryFunc: func(ctx context.Context, windowDays, startIndex int) *domain.WeeklySummary {
			return &domain.WeeklySummary{Start: end.AddDate(0, 0, -6), End: end, AvgDurationMin: 450}
		},
	}
	h := NewExportHandler(NewMockNightService(), analytics)

	req := httptest.NewRequest(http.MethodGet, "/v1/export/weekly.csv", nil)
	resp := httptest.NewRecorder()
	h.Weekly(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if !strings.HasPrefix(resp.Body.String(), export.WeeklyHeader) {
		t.Fatalf("unexpected body: %q", resp.Body.String())
	}
}

func TestExportHandler_Weekly_NoData(t *testing.T) {
	h := NewExportHandler(NewMockNightService(), &MockAnalyticsService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/export/weekly.csv", nil)
	resp := httptest.NewRecorder()
	h.Weekly(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.Code)
	}
}
