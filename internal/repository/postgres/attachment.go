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

func (r *attachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	query := `
		INSERT INTO attachments (
			id, patient_id, file_path, file_name, description,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	attachment.ID = uuid.New()
	attachment.CreatedAt = time.Now()
	attachment.UpdatedAt = attachment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		attachment.ID,
		attachment.PatientID,
		attachment.FilePath,
		attachment.FileName,
		attachment.Description,
		attachment.CreatedAt,
		attachment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

func (r *attachmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	query := `
		SELECT id, patient_id, file_path, file_name, description,
			   created_at, updated_at
		FROM attachments
		WHERE id = $1
	`
	var attachment model.Attachment
	err := r.db.GetContext(ctx, &attachment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return &attachment, nil
}

func (r *attachmentRepository) Update(ctx context.Context, attachment *model.Attachment) error {
	query := `
		UPDATE attachments
		SET description = $1, updated_at = $2
		WHERE id = $3
	`
	attachment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, attachment.Description, attachment.UpdatedAt, attachment.ID)
	if err != nil {
		return fmt.Errorf("failed to update attachment: %w", err)
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

func (r *attachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
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

func (r *attachmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Attachment, error) {
	query := `
		SELECT id, patient_id, file_path, file_name, description,
			   created_at, updated_at
		FROM attachments
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var attachments []*model.Attachment
	if err := r.db.SelectContext(ctx, &attachments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}
