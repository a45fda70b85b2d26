package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mwalczyk/sleep-sentinel/internal/service"
	"github.com/mwalczyk/sleep-sentinel/pkg/problem"
)

type SummaryHandler struct {
	analytics       service.AnalyticsService
	recommendations service.RecommendationService
}

func NewSummaryHandler(analytics service.AnalyticsService, recommendations service.RecommendationService) *SummaryHandler {
	return &SummaryHandler{analytics: analytics, recommendations: recommendations}
}

// Get handles GET /v1/summary
// @Summary Weekly summary
// @Description Compute rolling seven-night summary statistics. Use offset to step back in whole windows: offset=1 is the previous week.
// @Tags analytics
// @Produce json
// @Param offset query integer false "Window offset in whole weeks back from the most recent night" default(0) minimum(0)
// @Success 200 {object} domain.WeeklySummaryResponse "Summary statistics"
// @Success 204 "Not enough data for the requested window"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Router /summary [get]
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			problem.BadRequest("offset must be a non-negative integer").Write(w)
			return
		}
		offset = parsed
	}

	summary := h.analytics.Summary(r.Context(), service.DefaultSummaryWindowDays, offset*service.DefaultSummaryWindowDays)
	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary.ToResponse())
}

// Recommendations handles GET /v1/recommendations
// @Summary Coaching recommendations
// @Description Evaluate the rule set against this week's and last week's summaries. Output order is rule order.
// @Tags analytics
// @Produce json
// @Success 200 {array} domain.Recommendation "Recommendations, possibly a single default entry"
// @Success 204 "Not enough data"
// @Router /recommendations [get]
func (h *SummaryHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	current, previous := h.analytics.CurrentAndPrevious(r.Context())
	if current == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	recs := h.recommendations.Recommend(*current, previous)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}
