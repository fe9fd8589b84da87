package emotion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the emotion record store. Range parameters are instants;
// callers pass EndOfDay-style inclusive upper bounds.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByRange returns records created within [start, end], newest first.
	// A nil patientID matches all patients.
	ListByRange(ctx context.Context, patientID *uuid.UUID, start, end time.Time) ([]*Record, error)
	// FindByPatientPeriodDate returns the single record for a (patient,
	// period, calendar date) slot, or nil when the slot is empty.
	FindByPatientPeriodDate(ctx context.Context, patientID uuid.UUID, period Period, date time.Time) (*Record, error)
	// FindLastByPatient returns the most recent record in the range, or nil.
	FindLastByPatient(ctx context.Context, patientID uuid.UUID, start, end time.Time) (*Record, error)
	CountByPatient(ctx context.Context, patientID uuid.UUID, start, end time.Time) (int, error)
	// CountByEmotion returns per-emotion record counts in the range. Emotions
	// with no records are absent from the map.
	CountByEmotion(ctx context.Context, patientID uuid.UUID, start, end time.Time) (map[Emotion]int64, error)
}

// PatientDirectory is the patient lifecycle lookup this package consumes.
// The serving layer adapts the patient domain to it.
type PatientDirectory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*PatientInfo, error)
	// ListPatients returns the full roster, newest first.
	ListPatients(ctx context.Context) ([]*PatientInfo, error)
}
