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

func (r *noteRepository) Create(ctx context.Context, note *model.DoctorNote) error {
	query := `
		INSERT INTO doctor_notes (
			id, patient_id, doctor_id, note_text, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.PatientID,
		note.DoctorID,
		note.NoteText,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor note: %w", err)
	}
	return nil
}

func (r *noteRepository) Get(ctx context.Context, id uuid.UUID) (*model.DoctorNote, error) {
	query := `
		SELECT id, patient_id, doctor_id, note_text, created_at, updated_at
		FROM doctor_notes
		WHERE id = $1
	`
	var note model.DoctorNote
	err := r.db.GetContext(ctx, &note, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor note: %w", err)
	}

	if err := r.attachDoctor(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.DoctorNote) error {
	query := `
		UPDATE doctor_notes
		SET note_text = $1, updated_at = $2
		WHERE id = $3
	`
	note.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, note.NoteText, note.UpdatedAt, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update doctor note: %w", err)
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

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctor_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor note: %w", err)
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

func (r *noteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DoctorNote, error) {
	query := `
		SELECT id, patient_id, doctor_id, note_text, created_at, updated_at
		FROM doctor_notes
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var notes []*model.DoctorNote
	if err := r.db.SelectContext(ctx, &notes, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list doctor notes: %w", err)
	}

	for _, n := range notes {
		if err := r.attachDoctor(ctx, n); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func (r *noteRepository) ListByDoctor(ctx context.Context, doctorAccountID uuid.UUID) ([]*model.DoctorNote, error) {
	query := `
		SELECT id, patient_id, doctor_id, note_text, created_at, updated_at
		FROM doctor_notes
		WHERE doctor_id = $1
		ORDER BY created_at DESC
	`
	var notes []*model.DoctorNote
	if err := r.db.SelectContext(ctx, &notes, query, doctorAccountID); err != nil {
		return nil, fmt.Errorf("failed to list doctor notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) attachDoctor(ctx context.Context, note *model.DoctorNote) error {
	if note.DoctorID == nil {
		return nil
	}
	query := `
		SELECT id, email, username, password_hash,
			   first_name, last_name, is_doctor,
			   created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, *note.DoctorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load note author: %w", err)
	}
	note.Doctor = &account
	return nil
}
