package emotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recordCols = `id, patient_id, emotion, intensity, note, period, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.PatientID, &r.Emotion, &r.Intensity, &r.Note, &r.Period, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO emotion_record (id, patient_id, emotion, intensity, note, period, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.PatientID, rec.Emotion, rec.Intensity, rec.Note, rec.Period, rec.CreatedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordCols+` FROM emotion_record WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE emotion_record SET emotion=$2, intensity=$3, note=$4, updated_at=$5
		WHERE id = $1`,
		rec.ID, rec.Emotion, rec.Intensity, rec.Note, rec.UpdatedAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM emotion_record WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByRange(ctx context.Context, patientID *uuid.UUID, start, end time.Time) ([]*Record, error) {
	query := `SELECT ` + recordCols + ` FROM emotion_record
		WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at DESC`
	args := []interface{}{start, end}
	if patientID != nil {
		query = `SELECT ` + recordCols + ` FROM emotion_record
			WHERE created_at >= $1 AND created_at <= $2 AND patient_id = $3 ORDER BY created_at DESC`
		args = append(args, *patientID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (r *repoPG) FindByPatientPeriodDate(ctx context.Context, patientID uuid.UUID, period Period, date time.Time) (*Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `
		SELECT `+recordCols+` FROM emotion_record
		WHERE patient_id = $1 AND period = $2 AND created_at >= $3 AND created_at <= $4`,
		patientID, period, StartOfDay(date), EndOfDay(date)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) FindLastByPatient(ctx context.Context, patientID uuid.UUID, start, end time.Time) (*Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `
		SELECT `+recordCols+` FROM emotion_record
		WHERE patient_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC LIMIT 1`,
		patientID, start, end))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) CountByPatient(ctx context.Context, patientID uuid.UUID, start, end time.Time) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM emotion_record
		WHERE patient_id = $1 AND created_at >= $2 AND created_at <= $3`,
		patientID, start, end).Scan(&total)
	return total, err
}

func (r *repoPG) CountByEmotion(ctx context.Context, patientID uuid.UUID, start, end time.Time) (map[Emotion]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT emotion, COUNT(*) FROM emotion_record
		WHERE patient_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY emotion`,
		patientID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frequency := make(map[Emotion]int64)
	for rows.Next() {
		var e Emotion
		var n int64
		if err := rows.Scan(&e, &n); err != nil {
			return nil, err
		}
		frequency[e] = n
	}
	return frequency, rows.Err()
}
