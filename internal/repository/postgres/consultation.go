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

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	query := `
		INSERT INTO consultations (
			id, patient_id, doctor_id, scheduled_at, diagnosis, treatment,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	consultation.ID = uuid.New()
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = consultation.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.PatientID,
		consultation.DoctorID,
		consultation.ScheduledAt,
		consultation.Diagnosis,
		consultation.Treatment,
		consultation.Notes,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_at, diagnosis, treatment,
			   notes, created_at, updated_at
		FROM consultations
		WHERE id = $1
	`
	var consultation model.Consultation
	err := r.db.GetContext(ctx, &consultation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}

	if err := r.attachParticipants(ctx, &consultation); err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	query := `
		UPDATE consultations
		SET scheduled_at = $1, diagnosis = $2, treatment = $3, notes = $4, updated_at = $5
		WHERE id = $6
	`
	consultation.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		consultation.ScheduledAt,
		consultation.Diagnosis,
		consultation.Treatment,
		consultation.Notes,
		consultation.UpdatedAt,
		consultation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
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

func (r *consultationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consultations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete consultation: %w", err)
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

func (r *consultationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_at, diagnosis, treatment,
			   notes, created_at, updated_at
		FROM consultations
		WHERE patient_id = $1
		ORDER BY scheduled_at DESC
	`
	var consultations []*model.Consultation
	if err := r.db.SelectContext(ctx, &consultations, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}

	for _, c := range consultations {
		if err := r.attachParticipants(ctx, c); err != nil {
			return nil, err
		}
	}
	return consultations, nil
}

func (r *consultationRepository) ListByDoctor(ctx context.Context, doctorAccountID uuid.UUID) ([]*model.Consultation, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_at, diagnosis, treatment,
			   notes, created_at, updated_at
		FROM consultations
		WHERE doctor_id = $1
		ORDER BY scheduled_at DESC
	`
	var consultations []*model.Consultation
	if err := r.db.SelectContext(ctx, &consultations, query, doctorAccountID); err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}

	for _, c := range consultations {
		if err := r.attachParticipants(ctx, c); err != nil {
			return nil, err
		}
	}
	return consultations, nil
}

// attachParticipants expands the patient and doctor references into full
// sub-documents for reads. Writes keep referencing them by identifier.
func (r *consultationRepository) attachParticipants(ctx context.Context, consultation *model.Consultation) error {
	var patient model.PatientProfile
	err := r.db.GetContext(ctx, &patient,
		`SELECT `+patientColumns+` FROM patient_profiles p WHERE p.id = $1`, consultation.PatientID)
	if err == nil {
		consultation.Patient = &patient
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to load consultation patient: %w", err)
	}

	if consultation.DoctorID == nil {
		return nil
	}

	var doctor model.Account
	err = r.db.GetContext(ctx, &doctor, `
		SELECT id, email, username, password_hash,
			   first_name, last_name, is_doctor,
			   created_at, updated_at
		FROM accounts WHERE id = $1
	`, *consultation.DoctorID)
	if err == nil {
		consultation.Doctor = &doctor
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to load consultation doctor: %w", err)
	}
	return nil
}
