package service

import (
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
)

// Recommendation rule thresholds.
const (
	MinAvgDurationMin     = 420.0
	MinRegularityPct      = 70.0
	MaxSocialJetlagHrs    = 1.5
	MaxMidpointStdDevMin  = 60.0
	RegularityImprovement = 5.0
)

// RecommendationService maps summary statistics to coaching messages. Every
// rule is evaluated independently in a fixed order and each triggered rule
// contributes one message; the output order equals rule order and is a
// contract consumers may rely on.
type RecommendationService interface {
	Recommend(current domain.WeeklySummary, previous *domain.WeeklySummary) []domain.Recommendation
}

type recommendationService struct{}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService() RecommendationService {
	return recommendationService{}
}

func (recommendationService) Recommend(current domain.WeeklySummary, previous *domain.WeeklySummary) []domain.Recommendation {
	var recs []domain.Recommendation

	if current.AvgDurationMin < MinAvgDurationMin {
		recs = append(recs, domain.Recommendation{
			Text: "Average sleep is under seven hours. Aim for a steady seven to eight hour window.",
			Kind: domain.KindNudge,
		})
	}
	if current.RegularityPct < MinRegularityPct {
		recs = append(recs, domain.Recommendation{
			Text: "Regularity is below seventy percent. Set a bedtime window and enable a gentle reminder.",
			Kind: domain.KindNudge,
		})
	}
	if current.SocialJetlagHrs > MaxSocialJetlagHrs {
		recs = append(recs, domain.Recommendation{
			Text: "Weekend schedule shifts more than ninety minutes. Bring weekend and weekday midpoints closer.",
			Kind: domain.KindWarn,
		})
	}
	if current.MidpointStdDevMin > MaxMidpointStdDevMin {
		recs = append(recs, domain.Recommendation{
			Text: "Midpoint varies by more than an hour. Keep sleep and wake times steadier.",
			Kind: domain.KindNudge,
		})
	}
	if previous != nil && current.RegularityPct-previous.RegularityPct >= RegularityImprovement {
		recs = append(recs, domain.Recommendation{
			Text: "Good progress. Regularity improved week over week.",
			Kind: domain.KindCelebrate,
		})
	}

	if len(recs) == 0 {
		recs = []domain.Recommendation{{
			Text: "Steady week. Keep your routine working for you.",
			Kind: domain.KindCelebrate,
		}}
	}
	return recs
}
