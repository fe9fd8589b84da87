package emotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates record CRUD, the statistics aggregator, and the
// report grid over the record store and patient directory.
type Service struct {
	records  Repository
	patients PatientDirectory
	stats    *Stats
	now      func() time.Time
}

func NewService(records Repository, patients PatientDirectory) *Service {
	return &Service{
		records:  records,
		patients: patients,
		stats:    NewStats(records),
		now:      time.Now,
	}
}

// Stats exposes the statistics aggregator for callers that pass raw ranges.
func (s *Service) Stats() *Stats {
	return s.stats
}

// CreateInput is an admin-submitted record for an explicit date and period.
type CreateInput struct {
	PatientID uuid.UUID
	Emotion   string
	Intensity int
	Note      *string
	Date      time.Time
	Period    string
}

// SelfReportInput is a patient-submitted record; date and period come from
// the submission time.
type SelfReportInput struct {
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
}

// UpdateInput is an admin-submitted update to an existing record.
type UpdateInput struct {
	Emotion   string  `json:"emotion"`
	Intensity int     `json:"intensity"`
	Note      *string `json:"note,omitempty"`
}

func validateIntensity(intensity int) error {
	if intensity < 1 || intensity > 5 {
		return fmt.Errorf("intensity must be between 1 and 5, got %d", intensity)
	}
	return nil
}

// validateSlotFree ensures the (patient, period, date) slot has no record yet.
func (s *Service) validateSlotFree(ctx context.Context, patientID uuid.UUID, period Period, date time.Time) error {
	existing, err := s.records.FindByPatientPeriodDate(ctx, patientID, period, date)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("there is already an emotion record for %s %s",
			date.Format(gridDateLayout), period)
	}
	return nil
}

// CreateRecord creates a record on behalf of a patient for an explicit past
// date and period. The record's timestamp is the start of that period.
func (s *Service) CreateRecord(ctx context.Context, in CreateInput) (*RecordDTO, error) {
	emo, err := ParseEmotion(in.Emotion)
	if err != nil {
		return nil, err
	}
	period, err := ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	if err := validateIntensity(in.Intensity); err != nil {
		return nil, err
	}
	if !StartOfDay(in.Date).Before(StartOfDay(s.now())) {
		return nil, fmt.Errorf("date of emotion record can't be today or in the future")
	}
	if err := s.validateSlotFree(ctx, in.PatientID, period, in.Date); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetPatient(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	createdAt := StartOfDay(in.Date).Add(time.Duration(period.StartClock()) * time.Hour)
	if patient.Disabled && patient.UpdatedAt != nil && createdAt.After(*patient.UpdatedAt) {
		return nil, fmt.Errorf("emotion record can't be created after patient's disable date")
	}

	rec := &Record{
		PatientID: in.PatientID,
		Emotion:   emo,
		Intensity: in.Intensity,
		Note:      in.Note,
		Period:    period,
		CreatedAt: createdAt,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return ToDTO(rec, patient.Name), nil
}

// CreateRecordByPatient creates a record for the submitting patient in the
// current period.
func (s *Service) CreateRecordByPatient(ctx context.Context, patientID uuid.UUID, in SelfReportInput) (*RecordDTO, error) {
	emo, err := ParseEmotion(in.Emotion)
	if err != nil {
		return nil, err
	}
	if err := validateIntensity(in.Intensity); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	period := ClassifyTime(now)
	if err := s.validateSlotFree(ctx, patientID, period, now); err != nil {
		return nil, err
	}

	rec := &Record{
		PatientID: patientID,
		Emotion:   emo,
		Intensity: in.Intensity,
		Period:    period,
		CreatedAt: now,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return ToDTO(rec, patient.Name), nil
}

// UpdateRecord updates a record by id.
func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, in UpdateInput) (*RecordDTO, error) {
	emo, err := ParseEmotion(in.Emotion)
	if err != nil {
		return nil, err
	}
	if err := validateIntensity(in.Intensity); err != nil {
		return nil, err
	}

	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Emotion = emo
	rec.Intensity = in.Intensity
	rec.Note = in.Note
	now := s.now()
	rec.UpdatedAt = &now
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.withPatientName(ctx, rec)
}

// UpdateRecordByPatient updates the submitting patient's record for the
// current period of today. A self-reported record can be revised once.
func (s *Service) UpdateRecordByPatient(ctx context.Context, patientID uuid.UUID, in SelfReportInput) (*RecordDTO, error) {
	emo, err := ParseEmotion(in.Emotion)
	if err != nil {
		return nil, err
	}
	if err := validateIntensity(in.Intensity); err != nil {
		return nil, err
	}

	now := s.now()
	rec, err := s.records.FindByPatientPeriodDate(ctx, patientID, ClassifyTime(now), now)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no emotion record to update for the current period")
	}
	if rec.UpdatedAt != nil {
		return nil, fmt.Errorf("current emotion record is already updated, it can't be updated more than one time")
	}

	rec.Emotion = emo
	rec.Intensity = in.Intensity
	rec.UpdatedAt = &now
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.withPatientName(ctx, rec)
}

// GetRecord returns a record by id.
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*RecordDTO, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withPatientName(ctx, rec)
}

// DeleteRecord deletes a record by id, verifying it exists first.
func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.records.GetByID(ctx, id); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}

// TodayForPatient returns today's three period slots for the patient, with
// nil for periods that have no record yet.
func (s *Service) TodayForPatient(ctx context.Context, patientID uuid.UUID) (map[string]*RecordDTO, error) {
	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	slots := make(map[string]*RecordDTO, 3)
	for _, period := range Periods() {
		rec, err := s.records.FindByPatientPeriodDate(ctx, patientID, period, today)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			slots[string(period)] = nil
			continue
		}
		slots[string(period)] = ToDTO(rec, patient.Name)
	}
	return slots, nil
}

// Statistic computes the adherence summary for a patient over the filter
// range. Missed records respect the patient's eligibility window; the other
// figures use the raw filter range.
func (s *Service) Statistic(ctx context.Context, patientID uuid.UUID, f Filter) (*Statistic, error) {
	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	start := StartOfDay(f.StartDate)
	end := EndOfDay(f.EndDate)

	last, err := s.stats.FindLastEmotion(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	mostFrequent, err := s.stats.FindMostFrequentEmotions(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	total, err := s.stats.CountTotalRecords(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	missed, err := s.stats.CountMissedRecords(ctx, patient, f, s.now())
	if err != nil {
		return nil, err
	}
	frequency, err := s.stats.FrequencyOfEmotions(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}

	return &Statistic{
		PatientID:            patientID,
		LastEmotion:          last,
		MostFrequentEmotions: mostFrequent,
		TotalEmotionRecords:  total,
		MissedRecords:        missed,
		FrequencyOfEmotions:  frequency,
	}, nil
}

// GridAll returns the report grid for the whole roster over the filter range.
func (s *Service) GridAll(ctx context.Context, f Filter) (Grid, error) {
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListByRange(ctx, nil, StartOfDay(f.StartDate), EndOfDay(f.EndDate))
	if err != nil {
		return nil, err
	}
	return BuildGrid(s.toDTOs(records, patients), f, patients, s.now()), nil
}

// GridByPatient returns the report grid for a single patient.
func (s *Service) GridByPatient(ctx context.Context, patientID uuid.UUID, f Filter) (Grid, error) {
	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListByRange(ctx, &patientID, StartOfDay(f.StartDate), EndOfDay(f.EndDate))
	if err != nil {
		return nil, err
	}
	roster := []*PatientInfo{patient}
	return BuildGrid(s.toDTOs(records, roster), f, roster, s.now()), nil
}

// ListRecords returns the flat record list for the filter range, newest
// first, for export consumers. A nil patientID covers the whole roster.
func (s *Service) ListRecords(ctx context.Context, patientID *uuid.UUID, f Filter) ([]*RecordDTO, error) {
	var roster []*PatientInfo
	if patientID != nil {
		patient, err := s.patients.GetPatient(ctx, *patientID)
		if err != nil {
			return nil, err
		}
		roster = []*PatientInfo{patient}
	} else {
		var err error
		roster, err = s.patients.ListPatients(ctx)
		if err != nil {
			return nil, err
		}
	}
	records, err := s.records.ListByRange(ctx, patientID, StartOfDay(f.StartDate), EndOfDay(f.EndDate))
	if err != nil {
		return nil, err
	}
	return s.toDTOs(records, roster), nil
}

func (s *Service) toDTOs(records []*Record, roster []*PatientInfo) []*RecordDTO {
	names := make(map[uuid.UUID]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}
	dtos := make([]*RecordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, ToDTO(r, names[r.PatientID]))
	}
	return dtos
}

func (s *Service) withPatientName(ctx context.Context, rec *Record) (*RecordDTO, error) {
	patient, err := s.patients.GetPatient(ctx, rec.PatientID)
	if err != nil {
		return nil, err
	}
	return ToDTO(rec, patient.Name), nil
}
