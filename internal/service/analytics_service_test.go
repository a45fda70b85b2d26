package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
)

func midpointNight(date time.Time, midpoint *time.Time, asleep *time.Duration) domain.Night {
	return domain.Night{ID: uuid.New(), Date: date, Midpoint: midpoint, Asleep: asleep}
}

func TestAvgDurationMin(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	slice := []domain.Night{
		midpointNight(date, nil, durPtr(8*time.Hour)),
		midpointNight(date.AddDate(0, 0, -1), nil, durPtr(7*time.Hour)),
		// No asleep value: excluded entirely, never counted as zero.
		midpointNight(date.AddDate(0, 0, -2), nil, nil),
	}

	if got := avgDurationMin(slice); got != 450 {
		t.Fatalf("avgDurationMin = %v, want 450", got)
	}
}

func TestAvgDurationMin_AllAbsent(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	slice := []domain.Night{midpointNight(date, nil, nil)}

	if got := avgDurationMin(slice); got != 0 {
		t.Fatalf("avgDurationMin = %v, want 0", got)
	}
}

func TestAvgMidpoint_CircularMean(t *testing.T) {
	// 23:00 and 01:00 average to midnight, not noon.
	d1 := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	m1 := time.Date(2024, 1, 16, 23, 0, 0, 0, time.UTC)
	m2 := time.Date(2024, 1, 16, 1, 0, 0, 0, time.UTC)

	slice := []domain.Night{
		midpointNight(d1, &m1, nil),
		midpointNight(d2, &m2, nil),
	}

	got := avgMidpoint(slice)
	if got == nil {
		t.Fatalf("expected a mean midpoint")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("avgMidpoint = %v, want midnight", got)
	}
	// Anchored on the window-end date.
	if got.Day() != d1.Day() {
		t.Fatalf("avgMidpoint anchored to %v, want window end", got)
	}
}

func TestAvgMidpoint_NoMidpoints(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	slice := []domain.Night{midpointNight(date, nil, nil)}

	if got := avgMidpoint(slice); got != nil {
		t.Fatalf("avgMidpoint = %v, want nil", got)
	}
}

func TestSocialJetlagHours(t *testing.T) {
	// Friday is a weekday, Saturday a weekend night.
	friday := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)
	fridayMid := time.Date(2024, 1, 13, 3, 0, 0, 0, time.UTC)
	saturdayMid := time.Date(2024, 1, 14, 4, 30, 0, 0, time.UTC)

	slice := []domain.Night{
		midpointNight(saturday, &saturdayMid, nil),
		midpointNight(friday, &fridayMid, nil),
	}

	got := socialJetlagHours(slice)
	want := saturdayMid.Sub(fridayMid).Hours()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("socialJetlagHours = %v, want %v", got, want)
	}
}

func TestSocialJetlagHours_OneGroupEmpty(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)
	slice := []domain.Night{midpointNight(monday, &mid, nil)}

	if got := socialJetlagHours(slice); got != 0 {
		t.Fatalf("socialJetlagHours = %v, want 0 without weekend data", got)
	}
}

func TestTargetMidpoint_CrossesMidnight(t *testing.T) {
	settings := domain.DefaultSettings() // 23:00 to 07:00
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	got := targetMidpoint(settings, now)
	want := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("targetMidpoint = %v, want %v", got, want)
	}
}

func TestTargetMidpoint_SameDay(t *testing.T) {
	settings := domain.Settings{
		TargetBedtime: domain.TimeOfDay{Hour: 1, Minute: 0},
		TargetWake:    domain.TimeOfDay{Hour: 9, Minute: 0},
	}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	got := targetMidpoint(settings, now)
	want := time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("targetMidpoint = %v, want %v", got, want)
	}
}

func TestRegularityPercent(t *testing.T) {
	settings := domain.DefaultSettings() // target midpoint 03:00, tolerance 45 min
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	mk := func(day, hour, min int) domain.Night {
		date := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		mid := time.Date(2024, 1, day+1, hour, min, 0, 0, time.UTC)
		return midpointNight(date, &mid, nil)
	}

	slice := []domain.Night{
		mk(16, 3, 0),  // on target
		mk(15, 3, 30), // inside tolerance
		mk(14, 3, 44), // just inside
		mk(13, 6, 0),  // well outside
	}

	if got := regularityPercent(slice, settings, now); got != 75 {
		t.Fatalf("regularityPercent = %v, want 75", got)
	}
}

func TestRegularityPercent_MidpointBeforeTarget(t *testing.T) {
	settings := domain.DefaultSettings() // target midpoint 03:00, tolerance 45 min
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	// Midpoints on the early side of the target sit almost a full day from
	// the target anchored to their own date, so the comparison has to wrap.
	early := func(day, hour, min int) domain.Night {
		date := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		mid := time.Date(2024, 1, day, hour, min, 0, 0, time.UTC)
		return midpointNight(date, &mid, nil)
	}

	outside := []domain.Night{early(15, 0, 30)} // 2.5h before 03:00
	if got := regularityPercent(outside, settings, now); got != 0 {
		t.Fatalf("regularityPercent = %v, want 0", got)
	}

	inside := []domain.Night{early(15, 2, 30)} // 30 min before 03:00
	if got := regularityPercent(inside, settings, now); got != 100 {
		t.Fatalf("regularityPercent = %v, want 100", got)
	}
}

func TestRegularityPercent_MissingMidpointCountsAgainst(t *testing.T) {
	settings := domain.DefaultSettings()
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)
	slice := []domain.Night{
		midpointNight(date, &mid, nil),
		midpointNight(date.AddDate(0, 0, -1), nil, nil),
	}

	if got := regularityPercent(slice, settings, now); got != 50 {
		t.Fatalf("regularityPercent = %v, want 50", got)
	}
}

func TestMidpointStdDevMinutes(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	m1 := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)
	m2 := m1.Add(2 * time.Hour)

	slice := []domain.Night{
		midpointNight(date, &m1, nil),
		midpointNight(date.AddDate(0, 0, 1), &m2, nil),
	}

	// Population std dev of two points one hour either side of the mean.
	if got := midpointStdDevMinutes(slice); math.Abs(got-60) > 1e-9 {
		t.Fatalf("midpointStdDevMinutes = %v, want 60", got)
	}
}

func TestMidpointStdDevMinutes_FewerThanTwo(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)
	slice := []domain.Night{midpointNight(date, &mid, nil)}

	if got := midpointStdDevMinutes(slice); got != 0 {
		t.Fatalf("midpointStdDevMinutes = %v, want 0", got)
	}
}

func TestBestAndWorstNight_TiesGoToFirst(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	slice := []domain.Night{
		midpointNight(date, nil, durPtr(7*time.Hour)),
		midpointNight(date.AddDate(0, 0, -1), nil, durPtr(7*time.Hour)),
		midpointNight(date.AddDate(0, 0, -2), nil, durPtr(6*time.Hour)),
	}

	best, worst := bestAndWorstNight(slice)
	if best.ID != slice[0].ID {
		t.Fatalf("tie for best must resolve to the first night")
	}
	if worst.ID != slice[2].ID {
		t.Fatalf("unexpected worst night")
	}
}

func TestSummary(t *testing.T) {
	st := NewMockStore()
	var nights []domain.Night
	base := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		date := base.AddDate(0, 0, -i)
		mid := time.Date(date.Year(), date.Month(), date.Day()+1, 3, 0, 0, 0, time.UTC)
		nights = append(nights, midpointNight(date, &mid, durPtr(7*time.Hour+30*time.Minute)))
	}
	st.payload = &domain.Payload{Nights: nights, Settings: domain.DefaultSettings()}

	nightSvc := NewNightService(st, nil)
	if err := nightSvc.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	svc := &analyticsService{nights: nightSvc, now: func() time.Time { return base }}

	summary := svc.Summary(context.Background(), DefaultSummaryWindowDays, 0)
	if summary == nil {
		t.Fatalf("expected a summary")
	}
	if summary.AvgDurationMin != 450 {
		t.Fatalf("AvgDurationMin = %v, want 450", summary.AvgDurationMin)
	}
	if !summary.End.Equal(base) {
		t.Fatalf("window end = %v, want %v", summary.End, base)
	}
	if !summary.Start.Equal(base.AddDate(0, 0, -6)) {
		t.Fatalf("window start = %v", summary.Start)
	}
	if summary.RegularityPct != 100 {
		t.Fatalf("RegularityPct = %v, want 100", summary.RegularityPct)
	}

	// The previous window covers the three remaining nights.
	previous := svc.Summary(context.Background(), DefaultSummaryWindowDays, DefaultSummaryWindowDays)
	if previous == nil {
		t.Fatalf("expected a previous summary")
	}
	if !previous.End.Equal(base.AddDate(0, 0, -7)) {
		t.Fatalf("previous window end = %v", previous.End)
	}
}

func TestSummary_EmptyCollection(t *testing.T) {
	nightSvc := NewNightService(NewMockStore(), nil)
	svc := &analyticsService{nights: nightSvc, now: time.Now}

	if got := svc.Summary(context.Background(), DefaultSummaryWindowDays, 0); got != nil {
		t.Fatalf("expected nil summary for empty collection, got %+v", got)
	}
}

func TestSummary_OffsetPastEnd(t *testing.T) {
	st := NewMockStore()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	st.payload = &domain.Payload{
		Nights:   []domain.Night{midpointNight(date, nil, durPtr(7*time.Hour))},
		Settings: domain.DefaultSettings(),
	}
	nightSvc := NewNightService(st, nil)
	if err := nightSvc.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := &analyticsService{nights: nightSvc, now: time.Now}

	if got := svc.Summary(context.Background(), DefaultSummaryWindowDays, DefaultSummaryWindowDays); got != nil {
		t.Fatalf("expected nil summary past the collection, got %+v", got)
	}
}
