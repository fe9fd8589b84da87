package emotion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Stats computes adherence statistics over the record store. It is stateless
// and safe for concurrent use; every call is a pure read over the store.
type Stats struct {
	records Repository
}

func NewStats(records Repository) *Stats {
	return &Stats{records: records}
}

// FindLastEmotion returns the most recently recorded emotion in the range,
// or nil when the patient has no records there.
func (s *Stats) FindLastEmotion(ctx context.Context, patientID uuid.UUID, start, end time.Time) (*Emotion, error) {
	r, err := s.records.FindLastByPatient(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	e := r.Emotion
	return &e, nil
}

// FindMostFrequentEmotions returns every emotion tied at the maximum count in
// the range, in enum order. Empty when there are no records.
func (s *Stats) FindMostFrequentEmotions(ctx context.Context, patientID uuid.UUID, start, end time.Time) ([]Emotion, error) {
	frequency, err := s.records.CountByEmotion(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	if len(frequency) == 0 {
		return []Emotion{}, nil
	}

	var max int64
	for _, n := range frequency {
		if n > max {
			max = n
		}
	}

	result := make([]Emotion, 0, len(frequency))
	for _, e := range Emotions() {
		if frequency[e] == max {
			result = append(result, e)
		}
	}
	return result, nil
}

// CountTotalRecords counts the patient's records in the range.
func (s *Stats) CountTotalRecords(ctx context.Context, patientID uuid.UUID, start, end time.Time) (int, error) {
	return s.records.CountByPatient(ctx, patientID, start, end)
}

// FrequencyOfEmotions returns per-emotion counts zero-filled against the full
// emotion set, so the key set is always the complete enumeration.
func (s *Stats) FrequencyOfEmotions(ctx context.Context, patientID uuid.UUID, start, end time.Time) (map[Emotion]int64, error) {
	frequency, err := s.records.CountByEmotion(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	if frequency == nil {
		frequency = make(map[Emotion]int64, 7)
	}
	for _, e := range Emotions() {
		if _, ok := frequency[e]; !ok {
			frequency[e] = 0
		}
	}
	return frequency, nil
}

// CountMissedRecords subtracts the patient's recorded count from the number
// of periods they were eligible to report in. The result is not clamped:
// duplicate records for ineligible periods can drive it negative, and that is
// returned as computed.
func (s *Stats) CountMissedRecords(ctx context.Context, p *PatientInfo, f Filter, now time.Time) (int, error) {
	w := EligibilityWindow(p, f, now)
	total, err := s.records.CountByPatient(ctx, p.ID, w.Start, w.End)
	if err != nil {
		return 0, err
	}
	return w.ExpectedPeriods() - total, nil
}
