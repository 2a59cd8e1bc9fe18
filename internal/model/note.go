package model

import (
	"github.com/google/uuid"
)

// DoctorNote is authored by a doctor account against a patient profile.
// DoctorID goes null if the doctor account is later removed.
type DoctorNote struct {
	Base
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID  *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	NoteText  string     `db:"note_text" json:"note_text"`

	Doctor *Account `db:"-" json:"doctor,omitempty"`
}

type CreateDoctorNoteRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	NoteText  string    `json:"note_text" validate:"required"`
}

type UpdateDoctorNoteRequest struct {
	NoteText *string `json:"note_text" validate:"required"`
}
