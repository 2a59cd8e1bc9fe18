package model

import (
	"time"

	"github.com/google/uuid"
)

// Consultation links a patient profile with the doctor account that held
// it. DoctorID goes null if the doctor account is removed.
type Consultation struct {
	Base
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID    *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduled_at"`
	Diagnosis   string     `db:"diagnosis" json:"diagnosis"`
	Treatment   string     `db:"treatment" json:"treatment"`
	Notes       string     `db:"notes" json:"notes,omitempty"`

	Patient *PatientProfile `db:"-" json:"patient,omitempty"`
	Doctor  *Account        `db:"-" json:"doctor,omitempty"`
}

type CreateConsultationRequest struct {
	PatientID   uuid.UUID `json:"patient_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Diagnosis   string    `json:"diagnosis" validate:"required"`
	Treatment   string    `json:"treatment"`
	Notes       string    `json:"notes"`
}

type UpdateConsultationRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Diagnosis   *string    `json:"diagnosis"`
	Treatment   *string    `json:"treatment"`
	Notes       *string    `json:"notes"`
}
