package service

import (
	"context"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/llm"
)

// InsightsService combines weekly summaries, rule-based recommendations and
// an LLM narrative into one insights view.
type InsightsService interface {
	// Generate builds the insights view. Returns domain.ErrNoSummary when
	// there is not enough data and llm.ErrOpenAIUnavailable when no LLM is
	// configured.
	Generate(ctx context.Context) (*domain.InsightsResponse, error)
}

type insightsService struct {
	analytics       AnalyticsService
	recommendations RecommendationService
	llmClient       llm.NarrativeLLM
}

// NewInsightsService creates a new InsightsService. llmClient may be nil when
// no LLM is configured.
func NewInsightsService(analytics AnalyticsService, recommendations RecommendationService, llmClient llm.NarrativeLLM) InsightsService {
	return &insightsService{
		analytics:       analytics,
		recommendations: recommendations,
		llmClient:       llmClient,
	}
}

func (s *insightsService) Generate(ctx context.Context) (*domain.InsightsResponse, error) {
	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	current, previous := s.analytics.CurrentAndPrevious(ctx)
	if current == nil {
		return nil, domain.ErrNoSummary
	}

	recs := s.recommendations.Recommend(*current, previous)

	insightsCtx := &domain.InsightsContext{
		Current:         current.ToResponse(),
		Recommendations: recs,
	}
	if previous != nil {
		prevResp := previous.ToResponse()
		insightsCtx.Previous = &prevResp
	}

	narrative, err := s.llmClient.GenerateNarrative(ctx, insightsCtx)
	if err != nil {
		return nil, err
	}

	response := &domain.InsightsResponse{
		Summary:         insightsCtx.Current,
		Previous:        insightsCtx.Previous,
		Recommendations: recs,
		Insights:        *narrative,
	}
	return response, nil
}
