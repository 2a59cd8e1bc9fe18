package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
)

// Terminal reports whether the status permits no further transition.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusConfirmed || s == AppointmentStatusRejected
}

// Appointment is a patient's request for a doctor's time. It starts
// pending and the addressed doctor moves it exactly once to confirmed
// or rejected.
type Appointment struct {
	Base
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	RequestedAt time.Time         `db:"requested_at" json:"requested_at"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Notes       string            `db:"notes" json:"notes,omitempty"`

	Patient *PatientProfile `db:"-" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `db:"-" json:"doctor,omitempty"`
}

type CreateAppointmentRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	RequestedAt time.Time `json:"requested_at" validate:"required"`
	Notes       string    `json:"notes" validate:"max=1000"`
}

// RespondAppointmentRequest is the doctor's single accept/reject decision.
type RespondAppointmentRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type AppointmentFilters struct {
	PatientID       uuid.UUID
	DoctorID        uuid.UUID
	Status          AppointmentStatus
	ExcludeRejected bool
}
