package emotion

import (
	"time"

	"github.com/google/uuid"
)

// Record maps to the emotion_record table. At most one record exists per
// (patient, calendar date, period); the write path enforces this.
type Record struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	Emotion   Emotion    `db:"emotion" json:"emotion"`
	Intensity int        `db:"intensity" json:"intensity"`
	Note      *string    `db:"note" json:"note,omitempty"`
	Period    Period     `db:"period" json:"period"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// RecordDTO is the outward shape of a record, carrying the patient name so
// report grids can key on it.
type RecordDTO struct {
	ID          uuid.UUID  `json:"id"`
	Emotion     Emotion    `json:"emotion"`
	Intensity   int        `json:"intensity"`
	Period      Period     `json:"period"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Note        *string    `json:"note,omitempty"`
	PatientID   uuid.UUID  `json:"patient_id"`
	PatientName string     `json:"patient_name"`
}

// ToDTO converts a record to its DTO using the given patient name.
func ToDTO(r *Record, patientName string) *RecordDTO {
	return &RecordDTO{
		ID:          r.ID,
		Emotion:     r.Emotion,
		Intensity:   r.Intensity,
		Period:      r.Period,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Note:        r.Note,
		PatientID:   r.PatientID,
		PatientName: patientName,
	}
}

// Record converts the DTO back into its entity form.
func (d *RecordDTO) Record() *Record {
	return &Record{
		ID:        d.ID,
		PatientID: d.PatientID,
		Emotion:   d.Emotion,
		Intensity: d.Intensity,
		Note:      d.Note,
		Period:    d.Period,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// PatientInfo is the projection of a patient this package needs: identity
// plus the lifecycle bounds that drive eligibility. UpdatedAt holds the
// disable instant when Disabled is true.
type PatientInfo struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Disabled  bool       `json:"disabled"`
}

// Filter bounds a query to an inclusive calendar date range.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewFilter returns a filter covering just the given day.
func NewFilter(day time.Time) Filter {
	return Filter{StartDate: day, EndDate: day}
}

// Statistic is the per-patient adherence summary for a date range.
type Statistic struct {
	PatientID            uuid.UUID         `json:"patient_id"`
	LastEmotion          *Emotion          `json:"last_emotion,omitempty"`
	MostFrequentEmotions []Emotion         `json:"most_frequent_emotions"`
	TotalEmotionRecords  int               `json:"total_emotion_records"`
	MissedRecords        int               `json:"missed_records"`
	FrequencyOfEmotions  map[Emotion]int64 `json:"frequency_of_emotions"`
}
