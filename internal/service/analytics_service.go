package service

import (
	"context"
	"math"
	"time"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultSummaryWindowDays is the rolling window for weekly summaries.
	DefaultSummaryWindowDays = 7
)

// AnalyticsService computes rolling-window summary statistics from the night
// collection.
type AnalyticsService interface {
	// Summary computes statistics over the windowDays-length run of nights
	// starting at startIndex in the descending collection. Returns nil when
	// the collection or the slice is empty.
	Summary(ctx context.Context, windowDays, startIndex int) *domain.WeeklySummary
	// CurrentAndPrevious returns this week's and last week's summaries.
	CurrentAndPrevious(ctx context.Context) (*domain.WeeklySummary, *domain.WeeklySummary)
}

type analyticsService struct {
	nights NightService
	now    func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(nights NightService) AnalyticsService {
	return &analyticsService{nights: nights, now: time.Now}
}

func (s *analyticsService) Summary(ctx context.Context, windowDays, startIndex int) *domain.WeeklySummary {
	if windowDays <= 0 {
		windowDays = DefaultSummaryWindowDays
	}
	if startIndex < 0 {
		startIndex = 0
	}

	tracer := otel.Tracer("sleep-sentinel/analytics")
	_, span := tracer.Start(ctx, "AnalyticsService.Summary",
		trace.WithAttributes(
			attribute.Int("window.days", windowDays),
			attribute.Int("window.start_index", startIndex),
		),
	)
	defer span.End()

	nights := s.nights.Nights()
	if len(nights) == 0 || startIndex >= len(nights) {
		return nil
	}
	end := startIndex + windowDays
	if end > len(nights) {
		end = len(nights)
	}
	slice := nights[startIndex:end]
	if len(slice) == 0 {
		return nil
	}

	settings := s.nights.Settings()
	summary := summarize(slice, settings, s.now())
	span.SetAttributes(
		attribute.Float64("summary.avg_duration_min", summary.AvgDurationMin),
		attribute.Float64("summary.regularity_pct", summary.RegularityPct),
	)
	return summary
}

func (s *analyticsService) CurrentAndPrevious(ctx context.Context) (*domain.WeeklySummary, *domain.WeeklySummary) {
	current := s.Summary(ctx, DefaultSummaryWindowDays, 0)
	previous := s.Summary(ctx, DefaultSummaryWindowDays, DefaultSummaryWindowDays)
	return current, previous
}

// summarize computes all window statistics over a non-empty, most-recent-first
// slice of nights. slice[0] is the window's end, the last element its start.
func summarize(slice []domain.Night, settings domain.Settings, now time.Time) *domain.WeeklySummary {
	best, worst := bestAndWorstNight(slice)
	return &domain.WeeklySummary{
		Start:             slice[len(slice)-1].Date,
		End:               slice[0].Date,
		AvgDurationMin:    avgDurationMin(slice),
		AvgMidpoint:       avgMidpoint(slice),
		SocialJetlagHrs:   socialJetlagHours(slice),
		RegularityPct:     regularityPercent(slice, settings, now),
		MidpointStdDevMin: midpointStdDevMinutes(slice),
		BestNight:         best,
		WorstNight:        worst,
	}
}

// avgDurationMin is the mean asleep duration in minutes. Nights without an
// asleep value are excluded from numerator and denominator, never treated as
// zero.
func avgDurationMin(slice []domain.Night) float64 {
	var sum float64
	var count int
	for _, n := range slice {
		if n.Asleep == nil {
			continue
		}
		sum += n.Asleep.Minutes()
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// avgMidpoint is the circular mean of the available midpoint times of day,
// rendered as an instant on the window-end date. A linear epoch mean would
// average 23:00 and 01:00 to noon instead of midnight.
func avgMidpoint(slice []domain.Night) *time.Time {
	var sinSum, cosSum float64
	var count int
	var loc *time.Location
	for _, n := range slice {
		if n.Midpoint == nil {
			continue
		}
		m := *n.Midpoint
		if loc == nil {
			loc = m.Location()
		}
		secs := float64(m.Hour()*3600 + m.Minute()*60 + m.Second())
		angle := secs / 86400 * 2 * math.Pi
		sinSum += math.Sin(angle)
		cosSum += math.Cos(angle)
		count++
	}
	if count == 0 {
		return nil
	}

	angle := math.Atan2(sinSum/float64(count), cosSum/float64(count))
	frac := angle / (2 * math.Pi)
	if frac < 0 {
		frac += 1
	}
	secs := time.Duration(frac * 86400 * float64(time.Second))

	anchor := slice[0].Date
	mean := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc).Add(secs)
	return &mean
}

// socialJetlagHours is the absolute difference between the linear means of
// weekday and weekend midpoints, in hours. Zero when either group is empty.
func socialJetlagHours(slice []domain.Night) float64 {
	var weekdaySum, weekendSum float64
	var weekdayCount, weekendCount int
	for _, n := range slice {
		if n.Midpoint == nil {
			continue
		}
		sec := float64(n.Midpoint.UnixNano()) / float64(time.Second)
		if isWeekend(n.Date) {
			weekendSum += sec
			weekendCount++
		} else {
			weekdaySum += sec
			weekdayCount++
		}
	}
	if weekdayCount == 0 || weekendCount == 0 {
		return 0
	}
	weekdayMean := weekdaySum / float64(weekdayCount)
	weekendMean := weekendSum / float64(weekendCount)
	return math.Abs(weekdayMean-weekendMean) / 3600
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// targetMidpoint derives the target midpoint from the configured bedtime and
// wake, anchored to today's date. When the wake time of day is not after the
// bedtime the wake instant is advanced one day, so a 23:00 bedtime with a
// 07:00 wake yields a 03:00 midpoint rather than a negative interval.
func targetMidpoint(settings domain.Settings, now time.Time) time.Time {
	bed := settings.TargetBedtime.On(now)
	wake := settings.TargetWake.On(now)
	if !wake.After(bed) {
		wake = wake.AddDate(0, 0, 1)
	}
	return bed.Add(wake.Sub(bed) / 2)
}

// regularityPercent is the share of nights whose midpoint falls within the
// configured tolerance of the target midpoint. Nights without a midpoint
// count toward the denominator but never satisfy the tolerance test.
func regularityPercent(slice []domain.Night, settings domain.Settings, now time.Time) float64 {
	if len(slice) == 0 {
		return 0
	}
	target := targetMidpoint(settings, now)
	tol := time.Duration(settings.MidpointToleranceMinutes) * time.Minute

	hits := 0
	for _, n := range slice {
		if n.Midpoint == nil {
			continue
		}
		// Compare against the target anchored to the night's own date so
		// historical nights are judged on time of day, not distance from
		// today.
		nightTarget := targetMidpoint(settings, n.Midpoint.In(target.Location()))
		diff := n.Midpoint.Sub(nightTarget)
		if diff < 0 {
			diff = -diff
		}
		diff %= 24 * time.Hour
		if diff > 12*time.Hour {
			diff = 24*time.Hour - diff
		}
		if diff <= tol {
			hits++
		}
	}
	return float64(hits) / float64(len(slice)) * 100
}

// midpointStdDevMinutes is the population standard deviation of the available
// midpoint instants, in minutes. Zero with fewer than two midpoints.
func midpointStdDevMinutes(slice []domain.Night) float64 {
	var secs []float64
	for _, n := range slice {
		if n.Midpoint == nil {
			continue
		}
		secs = append(secs, float64(n.Midpoint.UnixNano())/float64(time.Second))
	}
	if len(secs) < 2 {
		return 0
	}

	var sum float64
	for _, v := range secs {
		sum += v
	}
	mean := sum / float64(len(secs))

	var sq float64
	for _, v := range secs {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(len(secs))
	return math.Sqrt(variance) / 60
}

// bestAndWorstNight ranks by asleep duration with absent values treated as
// zero for this comparison only. Ties resolve to the first night in slice
// order.
func bestAndWorstNight(slice []domain.Night) (*domain.Night, *domain.Night) {
	if len(slice) == 0 {
		return nil, nil
	}
	best, worst := slice[0], slice[0]
	for _, n := range slice[1:] {
		if n.AsleepOrZero() > best.AsleepOrZero() {
			best = n
		}
		if n.AsleepOrZero() < worst.AsleepOrZero() {
			worst = n
		}
	}
	return &best, &worst
}
