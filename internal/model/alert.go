package model

import (
	"time"

	"github.com/google/uuid"
)

type Recurrence string

const (
	RecurrenceOnce   Recurrence = "once"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// Alert is a patient reminder (medication, measurement, appointment...).
type Alert struct {
	Base
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	AlertType   string     `db:"alert_type" json:"alert_type"`
	Message     string     `db:"message" json:"message,omitempty"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduled_at"`
	Recurrence  Recurrence `db:"recurrence" json:"recurrence"`
	IsActive    bool       `db:"is_active" json:"is_active"`
}

type CreateAlertRequest struct {
	AlertType   string     `json:"alert_type" validate:"required,max=50"`
	Message     string     `json:"message"`
	ScheduledAt time.Time  `json:"scheduled_at" validate:"required"`
	Recurrence  Recurrence `json:"recurrence" validate:"omitempty,oneof=once daily weekly"`
}

type UpdateAlertRequest struct {
	AlertType   *string     `json:"alert_type" validate:"omitempty,max=50"`
	Message     *string     `json:"message"`
	ScheduledAt *time.Time  `json:"scheduled_at"`
	Recurrence  *Recurrence `json:"recurrence" validate:"omitempty,oneof=once daily weekly"`
	IsActive    *bool       `json:"is_active"`
}

// ToggleAlertsRequest drives the one bulk operation in the system: a
// single set-based update over all of the caller's alerts.
type ToggleAlertsRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ToggleAlertsResponse struct {
	Updated int64 `json:"updated"`
}
