package model

import (
	"time"

	"github.com/google/uuid"
)

type AdministrationMethod string

const (
	AdministrationOral      AdministrationMethod = "Oral"
	AdministrationInjection AdministrationMethod = "Injection"
	AdministrationTopical   AdministrationMethod = "Topical"
	AdministrationOther     AdministrationMethod = "Other"
)

type Medication struct {
	Base
	PatientID            uuid.UUID            `db:"patient_id" json:"patient_id"`
	Name                 string               `db:"name" json:"name"`
	Dosage               string               `db:"dosage" json:"dosage,omitempty"`
	Frequency            string               `db:"frequency" json:"frequency,omitempty"`
	AdministrationMethod AdministrationMethod `db:"administration_method" json:"administration_method"`
	StartDate            *time.Time           `db:"start_date" json:"start_date,omitempty"`
	EndDate              *time.Time           `db:"end_date" json:"end_date,omitempty"`
	Notes                string               `db:"notes" json:"notes,omitempty"`
}

type CreateMedicationRequest struct {
	Name                 string               `json:"name" validate:"required,max=100"`
	Dosage               string               `json:"dosage" validate:"max=50"`
	Frequency            string               `json:"frequency" validate:"max=50"`
	AdministrationMethod AdministrationMethod `json:"administration_method" validate:"omitempty,oneof=Oral Injection Topical Other"`
	StartDate            *time.Time           `json:"start_date"`
	EndDate              *time.Time           `json:"end_date"`
	Notes                string               `json:"notes"`
}

type UpdateMedicationRequest struct {
	Name                 *string               `json:"name" validate:"omitempty,max=100"`
	Dosage               *string               `json:"dosage" validate:"omitempty,max=50"`
	Frequency            *string               `json:"frequency" validate:"omitempty,max=50"`
	AdministrationMethod *AdministrationMethod `json:"administration_method" validate:"omitempty,oneof=Oral Injection Topical Other"`
	StartDate            *time.Time            `json:"start_date"`
	EndDate              *time.Time            `json:"end_date"`
	Notes                *string               `json:"notes"`
}
