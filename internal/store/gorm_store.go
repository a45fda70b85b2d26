package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nightRecord is the relational projection of a domain.Night.
type nightRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date       time.Time `gorm:"not null;uniqueIndex:idx_nights_date"`
	InBedSec   *float64  `gorm:"type:double precision"`
	AsleepSec  *float64  `gorm:"type:double precision"`
	Bedtime    *time.Time
	Wake       *time.Time
	Midpoint   *time.Time
	Efficiency *float64 `gorm:"type:double precision"`
	Inferred   bool     `gorm:"not null"`
}

func (nightRecord) TableName() string {
	return "nights"
}

// stateRecord is the single-row settings+cursor record. ID is always 1; the
// unit-payload semantics of Save map onto one transactional upsert.
type stateRecord struct {
	ID           int    `gorm:"primaryKey"`
	SettingsJSON []byte `gorm:"type:jsonb;not null"`
	Cursor       []byte ``
}

func (stateRecord) TableName() string {
	return "sync_state"
}

// GormStore persists the payload in Postgres. Save replaces the entire
// payload inside one transaction, matching the atomic unit-write contract of
// the file store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&nightRecord{}, &stateRecord{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load() (*domain.Payload, error) {
	var state stateRecord
	if err := s.db.First(&state, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var settings domain.Settings
	if err := json.Unmarshal(state.SettingsJSON, &settings); err != nil {
		return nil, nil // undecodable state is a cold start
	}

	var records []nightRecord
	if err := s.db.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	payload := &domain.Payload{Settings: settings, Cursor: state.Cursor}
	for _, r := range records {
		payload.Nights = append(payload.Nights, r.toNight())
	}
	return payload, nil
}

func (s *GormStore) Save(payload domain.Payload) error {
	settingsJSON, err := json.Marshal(payload.Settings)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&nightRecord{}).Error; err != nil {
			return err
		}
		if len(payload.Nights) > 0 {
			records := make([]nightRecord, 0, len(payload.Nights))
			for _, n := range payload.Nights {
				records = append(records, toRecord(n))
			}
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		state := stateRecord{ID: 1, SettingsJSON: settingsJSON, Cursor: payload.Cursor}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&state).Error
	})
}

func (s *GormStore) Reset() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&nightRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&stateRecord{}).Error
	})
}

func toRecord(n domain.Night) nightRecord {
	r := nightRecord{
		ID:         n.ID,
		Date:       n.Date,
		Bedtime:    n.Bedtime,
		Wake:       n.Wake,
		Midpoint:   n.Midpoint,
		Efficiency: n.Efficiency,
		Inferred:   n.Inferred,
	}
	if n.InBed != nil {
		sec := n.InBed.Seconds()
		r.InBedSec = &sec
	}
	if n.Asleep != nil {
		sec := n.Asleep.Seconds()
		r.AsleepSec = &sec
	}
	return r
}

func (r nightRecord) toNight() domain.Night {
	n := domain.Night{
		ID:         r.ID,
		Date:       r.Date,
		Bedtime:    r.Bedtime,
		Wake:       r.Wake,
		Midpoint:   r.Midpoint,
		Efficiency: r.Efficiency,
		Inferred:   r.Inferred,
	}
	if r.InBedSec != nil {
		d := time.Duration(*r.InBedSec * float64(time.Second))
		n.InBed = &d
	}
	if r.AsleepSec != nil {
		d := time.Duration(*r.AsleepSec * float64(time.Second))
		n.Asleep = &d
	}
	return n
}
