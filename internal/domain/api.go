package domain

import (
	"time"

	"github.com/google/uuid"
)

// SampleInput is one raw sample submitted to the ingest endpoint.
// @Description Raw source sample prior to normalization. Awake samples are
// accepted and dropped during normalization.
type SampleInput struct {
	// Sample category as reported by the source
	Type string `json:"type" validate:"required,oneof=inBed asleepUnspecified awake asleepCore asleepDeep asleepREM" example:"asleepCore"`
	// Sample start in RFC3339
	Start time.Time `json:"start" validate:"required" example:"2024-01-15T23:04:00Z"`
	// Sample end in RFC3339, never before start
	End time.Time `json:"end" validate:"required,gtefield=Start" example:"2024-01-16T01:12:00Z"`
	// Originating device or app identifier
	Source string `json:"source,omitempty" example:"watch"`
}

// IngestSamplesRequest is the request body for sample ingestion.
type IngestSamplesRequest struct {
	Samples []SampleInput `json:"samples" validate:"required,min=1,dive"`
}

// ActivityInput is one raw motion-activity sample submitted to the ingest
// endpoint.
type ActivityInput struct {
	// Activity timestamp in RFC3339
	Timestamp time.Time `json:"timestamp" validate:"required" example:"2024-01-15T23:12:00Z"`
	// Device was stationary
	Stationary bool `json:"stationary"`
	Walking    bool `json:"walking"`
	Running    bool `json:"running"`
	Automotive bool `json:"automotive"`
	Cycling    bool `json:"cycling"`
}

// IngestActivitiesRequest is the request body for motion-activity ingestion.
type IngestActivitiesRequest struct {
	Activities []ActivityInput `json:"activities" validate:"required,min=1,dive"`
}

// NightResponse is the wire shape of a canonical night.
// @Description Canonical per-night record. Missing optional fields are omitted.
type NightResponse struct {
	ID         uuid.UUID  `json:"id"`
	Date       time.Time  `json:"date"`
	InBedMin   *float64   `json:"in_bed_min,omitempty"`
	AsleepMin  *float64   `json:"asleep_min,omitempty"`
	Bedtime    *time.Time `json:"bedtime,omitempty"`
	Wake       *time.Time `json:"wake,omitempty"`
	Midpoint   *time.Time `json:"midpoint,omitempty"`
	Efficiency *float64   `json:"efficiency,omitempty"`
	Inferred   bool       `json:"inferred"`
}

func (n Night) ToResponse() NightResponse {
	resp := NightResponse{
		ID:         n.ID,
		Date:       n.Date,
		Bedtime:    n.Bedtime,
		Wake:       n.Wake,
		Midpoint:   n.Midpoint,
		Efficiency: n.Efficiency,
		Inferred:   n.Inferred,
	}
	if n.InBed != nil {
		m := n.InBed.Minutes()
		resp.InBedMin = &m
	}
	if n.Asleep != nil {
		m := n.Asleep.Minutes()
		resp.AsleepMin = &m
	}
	return resp
}

// UpdateSettingsRequest is the request body for settings updates. Omitted
// fields keep their current value.
type UpdateSettingsRequest struct {
	// Target bedtime as HH:MM wall-clock time
	TargetBedtime *string `json:"target_bedtime,omitempty" validate:"omitempty,timeofday" example:"23:00"`
	// Target wake as HH:MM wall-clock time
	TargetWake *string `json:"target_wake,omitempty" validate:"omitempty,timeofday" example:"07:00"`
	// Regularity tolerance around the target midpoint, in minutes
	MidpointToleranceMinutes *int `json:"midpoint_tolerance_minutes,omitempty" validate:"omitempty,min=0" example:"45"`
	// Enables the daily bedtime reminder
	RemindersEnabled *bool `json:"reminders_enabled,omitempty"`
}

// WeeklySummaryResponse is the wire shape of a rolling-window summary.
type WeeklySummaryResponse struct {
	Start             time.Time      `json:"start"`
	End               time.Time      `json:"end"`
	AvgDurationMin    float64        `json:"avg_duration_min"`
	AvgMidpoint       *time.Time     `json:"avg_midpoint,omitempty"`
	SocialJetlagHrs   float64        `json:"social_jetlag_hrs"`
	RegularityPct     float64        `json:"regularity_pct"`
	MidpointStdDevMin float64        `json:"midpoint_std_dev_min"`
	BestNight         *NightResponse `json:"best_night,omitempty"`
	WorstNight        *NightResponse `json:"worst_night,omitempty"`
}

func (s WeeklySummary) ToResponse() WeeklySummaryResponse {
	resp := WeeklySummaryResponse{
		Start:             s.Start,
		End:               s.End,
		AvgDurationMin:    s.AvgDurationMin,
		AvgMidpoint:       s.AvgMidpoint,
		SocialJetlagHrs:   s.SocialJetlagHrs,
		RegularityPct:     s.RegularityPct,
		MidpointStdDevMin: s.MidpointStdDevMin,
	}
	if s.BestNight != nil {
		r := s.BestNight.ToResponse()
		resp.BestNight = &r
	}
	if s.WorstNight != nil {
		r := s.WorstNight.ToResponse()
		resp.WorstNight = &r
	}
	return resp
}

// SyncResponse reports the outcome of a delta fetch.
type SyncResponse struct {
	// Number of normalized segments applied from the delta
	AppliedSamples int `json:"applied_samples"`
	// Night count after reconciliation
	Nights int `json:"nights"`
}

// InsightsContext is the aggregate handed to the narrative LLM.
type InsightsContext struct {
	Current         WeeklySummaryResponse  `json:"current"`
	Previous        *WeeklySummaryResponse `json:"previous,omitempty"`
	Recommendations []Recommendation       `json:"recommendations"`
}

// NarrativeInsights is the structured output expected back from the LLM.
type NarrativeInsights struct {
	Summary      string   `json:"summary"`
	Observations []string `json:"observations"`
	Guidance     []string `json:"guidance"`
}

// InsightsResponse combines computed summaries with the LLM narrative.
type InsightsResponse struct {
	Summary         WeeklySummaryResponse  `json:"summary"`
	Previous        *WeeklySummaryResponse `json:"previous,omitempty"`
	Recommendations []Recommendation       `json:"recommendations"`
	Insights        NarrativeInsights      `json:"insights"`
}
