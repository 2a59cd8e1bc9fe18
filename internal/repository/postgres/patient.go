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

const patientColumns = `
	p.id, p.account_id, p.address, p.gender, p.date_of_birth,
	p.phone_number, p.profile_picture, p.diabetes_type, p.diagnosis_date,
	p.medical_notes, p.created_at, p.updated_at
`

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	query := `SELECT ` + patientColumns + ` FROM patient_profiles p WHERE p.id = $1`

	var patient model.PatientProfile
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}

	if err := r.attachAccount(ctx, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.PatientProfile, error) {
	query := `SELECT ` + patientColumns + ` FROM patient_profiles p WHERE p.account_id = $1`

	var patient model.PatientProfile
	err := r.db.GetContext(ctx, &patient, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile by account: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.PatientProfile) error {
	query := `
		UPDATE patient_profiles
		SET address = $1, gender = $2, date_of_birth = $3, phone_number = $4,
			profile_picture = $5, diabetes_type = $6, diagnosis_date = $7,
			medical_notes = $8, updated_at = $9
		WHERE id = $10
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.Address,
		patient.Gender,
		patient.DateOfBirth,
		patient.PhoneNumber,
		patient.ProfilePicture,
		patient.DiabetesType,
		patient.DiagnosisDate,
		patient.MedicalNotes,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient profile: %w", err)
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

// Delete removes the profile; every clinical record cascades with it.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patient_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient profile: %w", err)
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

// ListFollowedBy returns the patients on the doctor's follow list.
func (r *patientRepository) ListFollowedBy(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patient_profiles p
		JOIN doctor_patients dp ON dp.patient_id = p.id
		WHERE dp.doctor_id = $1
		ORDER BY p.created_at ASC
	`
	var patients []*model.PatientProfile
	if err := r.db.SelectContext(ctx, &patients, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list followed patients: %w", err)
	}

	for _, p := range patients {
		if err := r.attachAccount(ctx, p); err != nil {
			return nil, err
		}
	}
	return patients, nil
}

func (r *patientRepository) attachAccount(ctx context.Context, patient *model.PatientProfile) error {
	query := `
		SELECT id, email, username, password_hash,
			   first_name, last_name, is_doctor,
			   created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, patient.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load patient account: %w", err)
	}
	patient.Account = &account
	return nil
}
