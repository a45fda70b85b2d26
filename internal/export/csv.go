// Package export renders nights and weekly summaries to their fixed CSV wire
// formats. Per-night rows use rounded numerics and the n/a placeholder; weekly
// rows use unrounded floats and an empty string for a missing average
// midpoint. The asymmetry is part of the format and kept deliberately.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
)

const (
	// NightsHeader is the fixed per-night CSV header.
	NightsHeader = "dateISO,inBedMin,asleepMin,efficiency,midpointISO,bedtimeISO,wakeISO,inferred"

	// WeeklyHeader is the fixed weekly-summary CSV header.
	WeeklyHeader = "weekStartISO,weekEndISO,avgDurationMin,avgMidpointISO,socialJetlagHrs,regularityPct,midpointStdDevMin"

	// Missing is the placeholder for absent per-night values.
	Missing = "n/a"
)

// NightsCSV renders the collection as per-night CSV, sorted by date
// ascending. Minutes carry one decimal, efficiency three; every missing value
// renders as the placeholder.
func NightsCSV(nights []domain.Night) string {
	sorted := make([]domain.Night, len(nights))
	copy(sorted, nights)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var b strings.Builder
	b.WriteString(NightsHeader)
	b.WriteByte('\n')
	for _, n := range sorted {
		b.WriteString(nightRow(n))
		b.WriteByte('\n')
	}
	return b.String()
}

func nightRow(n domain.Night) string {
	fields := []string{
		n.Date.Format(time.RFC3339),
		minutesField(n.InBed),
		minutesField(n.Asleep),
		efficiencyField(n.Efficiency),
		timeField(n.Midpoint),
		timeField(n.Bedtime),
		timeField(n.Wake),
		strconv.FormatBool(n.Inferred),
	}
	return strings.Join(fields, ",")
}

func minutesField(d *time.Duration) string {
	if d == nil {
		return Missing
	}
	return fmt.Sprintf("%.1f", d.Minutes())
}

func efficiencyField(e *float64) string {
	if e == nil {
		return Missing
	}
	return fmt.Sprintf("%.3f", *e)
}

func timeField(t *time.Time) string {
	if t == nil {
		return Missing
	}
	return t.Format(time.RFC3339)
}

// WeeklyCSV renders a single summary row. Floats are unrounded; a missing
// average midpoint renders as the empty string, not the placeholder.
func WeeklyCSV(summary domain.WeeklySummary) string {
	avgMid := ""
	if summary.AvgMidpoint != nil {
		avgMid = summary.AvgMidpoint.Format(time.RFC3339)
	}

	fields := []string{
		summary.Start.Format(time.RFC3339),
		summary.End.Format(time.RFC3339),
		floatField(summary.AvgDurationMin),
		avgMid,
		floatField(summary.SocialJetlagHrs),
		floatField(summary.RegularityPct),
		floatField(summary.MidpointStdDevMin),
	}
	return WeeklyHeader + "\n" + strings.Join(fields, ",") + "\n"
}

func floatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
