package handler

import (
	"net/http"

	"github.com/mwalczyk/sleep-sentinel/internal/export"
	"github.com/mwalczyk/sleep-sentinel/internal/service"
)

type ExportHandler struct {
	nights    service.NightService
	analytics service.AnalyticsService
}

func NewExportHandler(nights service.NightService, analytics service.AnalyticsService) *ExportHandler {
	return &ExportHandler{nights: nights, analytics: analytics}
}

// Nights handles GET /v1/export/nights.csv
// @Summary Export nights as CSV
// @Description Export every night in ascending date order. Absent optional fields render as n/a.
// @Tags export
// @Produce plain
// @Success 200 {string} string "CSV payload"
// @Router /export/nights.csv [get]
func (h *ExportHandler) Nights(w http.ResponseWriter, r *http.Request) {
	csv := export.NightsCSV(h.nights.Nights())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="nights.csv"`)
	w.Write([]byte(csv))
}

// Weekly handles GET /v1/export/weekly.csv
// @Summary Export the weekly summary as CSV
// @Description Export the most recent weekly summary as a single CSV row.
// @Tags export
// @Produce plain
// @Success 200 {string} string "CSV payload"
// @Success 204 "Not enough data"
// @Router /export/weekly.csv [get]
func (h *ExportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	summary := h.analytics.Summary(r.Context(), service.DefaultSummaryWindowDays, 0)
	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	csv := export.WeeklyCSV(*summary)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="weekly.csv"`)
	w.Write([]byte(csv))
}
