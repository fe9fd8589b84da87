package emotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecordDTORoundTrip(t *testing.T) {
	note := "after lunch"
	updated := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)
	rec := &Record{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		Emotion:   EmotionExcited,
		Intensity: 4,
		Note:      &note,
		Period:    PeriodAfternoon,
		CreatedAt: time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC),
		UpdatedAt: &updated,
	}

	dto := ToDTO(rec, "Alice")
	if dto.PatientName != "Alice" {
		t.Errorf("patient name = %q, want Alice", dto.PatientName)
	}

	back := dto.Record()
	if *back != *rec {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, rec)
	}
}

func TestRecordDTORoundTrip_NilOptionals(t *testing.T) {
	rec := &Record{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		Emotion:   EmotionSad,
		Intensity: 1,
		Period:    PeriodMorning,
		CreatedAt: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
	}

	back := ToDTO(rec, "Bob").Record()
	if *back != *rec {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, rec)
	}
}
