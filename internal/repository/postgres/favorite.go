package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/model"
)

// Add relies on the unique (patient_id, doctor_id) constraint: the
// insert and the duplicate check are one atomic statement.
func (r *favoriteRepository) Add(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO favorite_doctors (id, patient_id, doctor_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (patient_id, doctor_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, uuid.New(), patientID, doctorID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to favorite doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM favorite_doctors
		WHERE patient_id = $1 AND doctor_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, patientID, doctorID)
	if err != nil {
		return false, fmt.Errorf("failed to unfavorite doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *favoriteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DoctorProfile, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctor_profiles d
		JOIN favorite_doctors f ON f.doctor_id = d.id
		WHERE f.patient_id = $1
		ORDER BY f.created_at DESC
	`
	var doctors []*model.DoctorProfile
	if err := r.db.SelectContext(ctx, &doctors, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list favorite doctors: %w", err)
	}
	return doctors, nil
}

func (r *favoriteRepository) CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM favorite_doctors WHERE doctor_id = $1`, doctorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
