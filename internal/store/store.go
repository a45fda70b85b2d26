// Package store provides the persistent payload store. Nights, settings and
// the sync cursor are always persisted as one unit.
package store

import "github.com/mwalczyk/sleep-sentinel/internal/domain"

// PersistentStore is the on-disk (or relational) payload store. Load returns
// (nil, nil) when no usable prior state exists; decode failures are treated as
// cold starts, not errors.
type PersistentStore interface {
	Load() (*domain.Payload, error)
	Save(payload domain.Payload) error
	Reset() error
}
