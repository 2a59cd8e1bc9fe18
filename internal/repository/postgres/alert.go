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

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (
			id, patient_id, alert_type, message, scheduled_at, recurrence,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	alert.ID = uuid.New()
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.PatientID,
		alert.AlertType,
		alert.Message,
		alert.ScheduledAt,
		alert.Recurrence,
		alert.IsActive,
		alert.CreatedAt,
		alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepository) Get(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	query := `
		SELECT id, patient_id, alert_type, message, scheduled_at, recurrence,
			   is_active, created_at, updated_at
		FROM alerts
		WHERE id = $1
	`
	var alert model.Alert
	err := r.db.GetContext(ctx, &alert, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *model.Alert) error {
	query := `
		UPDATE alerts
		SET alert_type = $1, message = $2, scheduled_at = $3, recurrence = $4,
			is_active = $5, updated_at = $6
		WHERE id = $7
	`
	alert.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		alert.AlertType,
		alert.Message,
		alert.ScheduledAt,
		alert.Recurrence,
		alert.IsActive,
		alert.UpdatedAt,
		alert.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
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

func (r *alertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
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

func (r *alertRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Alert, error) {
	query := `
		SELECT id, patient_id, alert_type, message, scheduled_at, recurrence,
			   is_active, created_at, updated_at
		FROM alerts
		WHERE patient_id = $1
		ORDER BY scheduled_at ASC
	`
	var alerts []*model.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// SetActiveForPatient is one set-based statement: it succeeds or fails as
// a unit, with no partial-failure semantics.
func (r *alertRepository) SetActiveForPatient(ctx context.Context, patientID uuid.UUID, active bool) (int64, error) {
	query := `
		UPDATE alerts
		SET is_active = $1, updated_at = $2
		WHERE patient_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, active, time.Now(), patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to toggle alerts: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
