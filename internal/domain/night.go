package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Night is the canonical record for one calendar night. Date is the local
// midnight anchor and the unique key of the collection: at most one Night
// exists per distinct date, and the collection is kept sorted by Date
// descending.
type Night struct {
	ID         uuid.UUID      `json:"id"`
	Date       time.Time      `json:"date"`
	InBed      *time.Duration `json:"in_bed,omitempty"`
	Asleep     *time.Duration `json:"asleep,omitempty"`
	Bedtime    *time.Time     `json:"bedtime,omitempty"`
	Wake       *time.Time     `json:"wake,omitempty"`
	Midpoint   *time.Time     `json:"midpoint,omitempty"`
	Efficiency *float64       `json:"efficiency,omitempty"`
	Inferred   bool           `json:"inferred"`
}

// AsleepOrZero returns the asleep duration, treating an absent value as zero.
// Used only for best/worst ranking; statistical means must exclude absent
// values instead.
func (n Night) AsleepOrZero() time.Duration {
	if n.Asleep == nil {
		return 0
	}
	return *n.Asleep
}

// ComputeMidpoint returns bedtime + asleep/2. Defined iff bedtime is known
// and asleep > 0.
func ComputeMidpoint(bedtime *time.Time, asleep *time.Duration) *time.Time {
	if bedtime == nil || asleep == nil || *asleep <= 0 {
		return nil
	}
	m := bedtime.Add(*asleep / 2)
	return &m
}

// ComputeEfficiency returns asleep/inBed. Defined iff inBed > 0; an absent
// asleep value contributes zero to the ratio.
func ComputeEfficiency(asleep *time.Duration, inBed *time.Duration) *float64 {
	if inBed == nil || *inBed <= 0 {
		return nil
	}
	var a time.Duration
	if asleep != nil {
		a = *asleep
	}
	e := float64(a) / float64(*inBed)
	return &e
}

// TimeOfDay is a wall-clock time without a date, serialized as "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time-of-day onto the calendar day of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// MinutesOfDay returns minutes after midnight.
func (t TimeOfDay) MinutesOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimeOfDay parses "HH:MM" wall-clock strings.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q must be HH:MM", ErrInvalidInput, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q out of range", ErrInvalidInput, s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Settings is the process-wide coaching configuration. It is read by the
// analytics engine and mutated only through the night service.
type Settings struct {
	TargetBedtime            TimeOfDay `json:"target_bedtime"`
	TargetWake               TimeOfDay `json:"target_wake"`
	MidpointToleranceMinutes int       `json:"midpoint_tolerance_minutes"`
	RemindersEnabled         bool      `json:"reminders_enabled"`
}

// DefaultSettings mirrors the out-of-box coaching targets.
func DefaultSettings() Settings {
	return Settings{
		TargetBedtime:            TimeOfDay{Hour: 23},
		TargetWake:               TimeOfDay{Hour: 7},
		MidpointToleranceMinutes: 45,
	}
}

// WeeklySummary is the derived rolling-window statistic set. It is never
// persisted.
type WeeklySummary struct {
	Start             time.Time
	End               time.Time
	AvgDurationMin    float64
	AvgMidpoint       *time.Time
	SocialJetlagHrs   float64
	RegularityPct     float64
	MidpointStdDevMin float64
	BestNight         *Night
	WorstNight        *Night
}

// RecommendationKind is the tone of a coaching message.
type RecommendationKind string

const (
	KindCelebrate RecommendationKind = "celebrate"
	KindNudge     RecommendationKind = "nudge"
	KindWarn      RecommendationKind = "warn"
)

// Recommendation is one coaching message. Output order of a recommendation
// batch is a contract consumers may rely on.
type Recommendation struct {
	Text string             `json:"text"`
	Kind RecommendationKind `json:"kind"`
}

// Payload is the unit of persistence: nights, settings and the opaque sync
// cursor are always loaded and saved together.
type Payload struct {
	Nights   []Night  `json:"nights"`
	Settings Settings `json:"settings"`
	Cursor   []byte   `json:"cursor,omitempty"`
}
