package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
)

func (r *readingRepository) Create(ctx context.Context, reading *model.GlucoseReading) error {
	query := `
		INSERT INTO glucose_readings (
			id, patient_id, value, reading_type, notes, measured_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	reading.ID = uuid.New()
	reading.CreatedAt = time.Now()
	reading.UpdatedAt = reading.CreatedAt
	if reading.MeasuredAt.IsZero() {
		reading.MeasuredAt = reading.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, query,
		reading.ID,
		reading.PatientID,
		reading.Value,
		reading.ReadingType,
		reading.Notes,
		reading.MeasuredAt,
		reading.CreatedAt,
		reading.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create glucose reading: %w", err)
	}
	return nil
}

func (r *readingRepository) Get(ctx context.Context, id uuid.UUID) (*model.GlucoseReading, error) {
	query := `
		SELECT id, patient_id, value, reading_type, notes, measured_at,
			   created_at, updated_at
		FROM glucose_readings
		WHERE id = $1
	`
	var reading model.GlucoseReading
	err := r.db.GetContext(ctx, &reading, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get glucose reading: %w", err)
	}
	return &reading, nil
}

// UpdateNotes is the only mutation a reading permits after creation.
func (r *readingRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	query := `
		UPDATE glucose_readings
		SET notes = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, notes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update glucose reading notes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *readingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM glucose_readings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete glucose reading: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *readingRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.GlucoseReading, error) {
	query := `
		SELECT id, patient_id, value, reading_type, notes, measured_at,
			   created_at, updated_at
		FROM glucose_readings
		WHERE patient_id = $1
		ORDER BY measured_at DESC
	`
	var readings []*model.GlucoseReading
	if err := r.db.SelectContext(ctx, &readings, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list glucose readings: %w", err)
	}
	return readings, nil
}
