package model

import (
	"time"

	"github.com/google/uuid"
)

type ReadingType string

const (
	ReadingFasting     ReadingType = "Fasting"
	ReadingBeforeMeal  ReadingType = "Before Meal"
	ReadingAfterMeal   ReadingType = "After Meal"
	ReadingBeforeSleep ReadingType = "Before Sleep"
	ReadingRandom      ReadingType = "Random"
	ReadingOther       ReadingType = "Other"
)

// GlucoseReading is immutable after creation except for its notes.
type GlucoseReading struct {
	Base
	PatientID   uuid.UUID   `db:"patient_id" json:"patient_id"`
	Value       float64     `db:"value" json:"value"`
	ReadingType ReadingType `db:"reading_type" json:"reading_type"`
	Notes       string      `db:"notes" json:"notes,omitempty"`
	MeasuredAt  time.Time   `db:"measured_at" json:"measured_at"`
}

type CreateGlucoseReadingRequest struct {
	Value       float64     `json:"value" validate:"required,gt=0,lt=2000"`
	ReadingType ReadingType `json:"reading_type" validate:"required,oneof=Fasting 'Before Meal' 'After Meal' 'Before Sleep' Random Other"`
	Notes       string      `json:"notes"`
	MeasuredAt  *time.Time  `json:"measured_at"`
}

// UpdateGlucoseReadingRequest only accepts notes; value, type and
// timestamp are fixed once recorded.
type UpdateGlucoseReadingRequest struct {
	Notes *string `json:"notes" validate:"required"`
}
