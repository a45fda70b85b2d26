package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/llm"
	"github.com/mwalczyk/sleep-sentinel/internal/service"
	"github.com/mwalczyk/sleep-sentinel/pkg/problem"
)

type InsightsHandler struct {
	insights service.InsightsService
}

func NewInsightsHandler(insights service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// Get handles GET /v1/insights
// @Summary Narrative sleep insights
// @Description Generate an LLM narrative over this week's and last week's summaries and the rule-based recommendations.
// @Tags insights
// @Produce json
// @Success 200 {object} domain.InsightsResponse "Summaries, recommendations and narrative"
// @Success 204 "Not enough data"
// @Failure 502 {object} problem.Problem "LLM request or response failure"
// @Failure 503 {object} problem.Problem "LLM not configured"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /insights [get]
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response, err := h.insights.Generate(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSummary):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, llm.ErrOpenAIUnavailable):
			problem.ServiceUnavailable("The insights service is not configured").Write(w)
		case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
			problem.BadGateway("The insights service failed to respond").Write(w)
		default:
			problem.InternalError("Failed to generate insights").Write(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
