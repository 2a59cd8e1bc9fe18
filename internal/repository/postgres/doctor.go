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

const doctorColumns = `
	d.id, d.account_id, d.specialty, d.bio, d.working_hours,
	d.is_available, d.average_rating, d.created_at, d.updated_at,
	(SELECT COUNT(*) FROM favorite_doctors f WHERE f.doctor_id = d.id) AS favorite_count
`

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctor_profiles d WHERE d.id = $1`

	var doctor model.DoctorProfile
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}

	if err := r.attachAccount(ctx, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.DoctorProfile, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctor_profiles d WHERE d.account_id = $1`

	var doctor model.DoctorProfile
	err := r.db.GetContext(ctx, &doctor, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor profile by account: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.DoctorProfile) error {
	query := `
		UPDATE doctor_profiles
		SET specialty = $1, bio = $2, working_hours = $3,
			is_available = $4, updated_at = $5
		WHERE id = $6
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Specialty,
		doctor.Bio,
		doctor.WorkingHours,
		doctor.IsAvailable,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor profile: %w", err)
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

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctor_profiles d ORDER BY d.average_rating DESC`

	var doctors []*model.DoctorProfile
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	for _, d := range doctors {
		if err := r.attachAccount(ctx, d); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

// FollowPatient is idempotent: re-adding a followed patient is a no-op.
func (r *doctorRepository) FollowPatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	query := `
		INSERT INTO doctor_patients (doctor_id, patient_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (doctor_id, patient_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, doctorID, patientID, time.Now()); err != nil {
		return fmt.Errorf("failed to follow patient: %w", err)
	}
	return nil
}

func (r *doctorRepository) IsFollowing(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM doctor_patients
			WHERE doctor_id = $1 AND patient_id = $2
		)
	`
	var following bool
	if err := r.db.GetContext(ctx, &following, query, doctorID, patientID); err != nil {
		return false, fmt.Errorf("failed to check follow relationship: %w", err)
	}
	return following, nil
}

func (r *doctorRepository) attachAccount(ctx context.Context, doctor *model.DoctorProfile) error {
	query := `
		SELECT id, email, username, password_hash,
			   first_name, last_name, is_doctor,
			   created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, doctor.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load doctor account: %w", err)
	}
	doctor.Account = &account
	return nil
}
