package seed

import (
	"log"
	"math/rand"
	"time"

	"github.com/mwalczyk/sleep-sentinel/internal/source"
)

const seededNights = 14

// Run fills the sample journal with a demo fortnight of raw samples. Safe to
// call before the first delta sync; the samples flow through the normal
// normalization and aggregation path.
func Run(journal *source.Journal) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	total := 0
	for i := seededNights; i >= 1; i-- {
		date := now.AddDate(0, 0, -i)

		// Weekend bedtimes drift later to exercise the social-jetlag rule.
		bedHour := 22 + rng.Intn(2)
		if wd := date.Weekday(); wd == time.Friday || wd == time.Saturday {
			bedHour++
		}
		bedtime := time.Date(date.Year(), date.Month(), date.Day(), bedHour, rng.Intn(60), 0, 0, time.UTC)
		wake := bedtime.Add(time.Duration(6+rng.Intn(3)) * time.Hour)

		inBed := source.Sample{
			Category: source.CategoryInBed,
			Start:    bedtime.Add(-time.Duration(rng.Intn(20)) * time.Minute),
			End:      wake.Add(time.Duration(rng.Intn(15)) * time.Minute),
			Source:   "seed",
		}
		total += journal.Append(inBed)

		// Split the asleep interval into stage segments with a short awake gap.
		cursor := bedtime
		stages := []source.SampleCategory{source.CategoryAsleepCore, source.CategoryAsleepDeep, source.CategoryAsleepREM, source.CategoryAsleepCore}
		for _, stage := range stages {
			segEnd := cursor.Add(wake.Sub(cursor) / 2)
			if segEnd.After(wake) {
				segEnd = wake
			}
			total += journal.Append(source.Sample{
				Category: stage,
				Start:    cursor,
				End:      segEnd,
				Source:   "seed",
			})
			cursor = segEnd
			if stage == source.CategoryAsleepDeep && rng.Float32() < 0.4 {
				awakeEnd := cursor.Add(time.Duration(2+rng.Intn(8)) * time.Minute)
				total += journal.Append(source.Sample{
					Category: source.CategoryAwake,
					Start:    cursor,
					End:      awakeEnd,
					Source:   "seed",
				})
				cursor = awakeEnd
			}
		}
		if cursor.Before(wake) {
			total += journal.Append(source.Sample{
				Category: source.CategoryAsleepCore,
				Start:    cursor,
				End:      wake,
				Source:   "seed",
			})
		}
	}

	log.Printf("Seeded journal with %d samples over %d nights", total, seededNights)
}
