package model

import (
	"time"

	"github.com/google/uuid"
)

type DiabetesType string

const (
	DiabetesType1       DiabetesType = "Type 1"
	DiabetesType2       DiabetesType = "Type 2"
	DiabetesGestational DiabetesType = "Gestational"
	DiabetesOther       DiabetesType = "Other"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// PatientProfile holds the role-specific attributes of a patient account.
// Every clinical record carries a patient_id back to one of these.
type PatientProfile struct {
	Base
	AccountID      uuid.UUID    `db:"account_id" json:"account_id"`
	Address        string       `db:"address" json:"address"`
	Gender         Gender       `db:"gender" json:"gender,omitempty"`
	DateOfBirth    *time.Time   `db:"date_of_birth" json:"date_of_birth,omitempty"`
	PhoneNumber    string       `db:"phone_number" json:"phone_number"`
	ProfilePicture string       `db:"profile_picture" json:"-"`
	DiabetesType   DiabetesType `db:"diabetes_type" json:"diabetes_type"`
	DiagnosisDate  *time.Time   `db:"diagnosis_date" json:"diagnosis_date,omitempty"`
	MedicalNotes   string       `db:"medical_notes" json:"medical_notes,omitempty"`

	// Absolute URL when a request context is available, relative path
	// otherwise. Filled by the handler, never stored.
	ProfilePictureURL string `db:"-" json:"profile_picture_url,omitempty"`

	// Expanded on read only; writes reference the account by identifier.
	Account *Account `db:"-" json:"account,omitempty"`
}

type UpdatePatientRequest struct {
	Address       *string       `json:"address"`
	Gender        *Gender       `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth   *time.Time    `json:"date_of_birth"`
	PhoneNumber   *string       `json:"phone_number" validate:"omitempty,max=20"`
	DiabetesType  *DiabetesType `json:"diabetes_type" validate:"omitempty,oneof='Type 1' 'Type 2' Gestational Other"`
	DiagnosisDate *time.Time    `json:"diagnosis_date"`
	MedicalNotes  *string       `json:"medical_notes"`
}

// MedicalData is the medical-data sub-resource: the profile with all of
// its clinical records embedded.
type MedicalData struct {
	Profile     *PatientProfile   `json:"profile"`
	Readings    []*GlucoseReading `json:"glucose_readings"`
	Medications []*Medication     `json:"medications"`
	Notes       []*DoctorNote     `json:"doctor_notes"`
}
