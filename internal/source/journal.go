package source

import (
	"context"
	"sync"
	"time"

	"github.com/mwalczyk/sleep-sentinel/pkg/cursor"
)

// Journal is an in-process HealthSampleSource backed by an append-only sample
// journal. Each appended sample gets a monotonic sequence number; the opaque
// cursor encodes the highest sequence already delivered, so a delta query
// returns exactly the samples appended since the previous sync.
type Journal struct {
	mu      sync.Mutex
	entries []journalEntry
	nextSeq uint64
}

type journalEntry struct {
	seq    uint64
	sample Sample
}

// NewJournal creates an empty journal source.
func NewJournal() *Journal {
	return &Journal{nextSeq: 1}
}

// Append records samples and returns the number accepted.
func (j *Journal) Append(samples ...Sample) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, s := range samples {
		j.entries = append(j.entries, journalEntry{seq: j.nextSeq, sample: s})
		j.nextSeq++
	}
	return len(samples)
}

// RequestAuthorization always succeeds for the in-process journal.
func (j *Journal) RequestAuthorization(ctx context.Context) (bool, error) {
	return true, nil
}

// QueryDelta returns journal samples past the cursor whose interval overlaps
// the window. A corrupt cursor is treated as "no prior position". When no new
// samples exist the input cursor is returned unchanged, so callers can detect
// a no-op delta by cursor equality.
func (j *Journal) QueryDelta(ctx context.Context, windowStart, windowEnd time.Time, cur []byte) ([]Sample, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var offset uint64
	if tok, err := cursor.Decode(cur); err == nil && tok != nil {
		offset = tok.Offset
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	var out []Sample
	maxSeq := offset
	for _, e := range j.entries {
		if e.seq <= offset {
			continue
		}
		maxSeq = e.seq
		if e.sample.End.Before(windowStart) || e.sample.Start.After(windowEnd) {
			continue
		}
		out = append(out, e.sample)
	}

	if maxSeq == offset {
		return nil, cur, nil
	}

	tok := &cursor.Token{Offset: maxSeq, IssuedAt: time.Now().UTC()}
	return out, tok.Encode(), nil
}
