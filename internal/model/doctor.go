package model

import (
	"github.com/google/uuid"
)

// DoctorProfile holds the professional attributes of a doctor account.
type DoctorProfile struct {
	Base
	AccountID     uuid.UUID `db:"account_id" json:"account_id"`
	Specialty     string    `db:"specialty" json:"specialty"`
	Bio           string    `db:"bio" json:"bio"`
	WorkingHours  string    `db:"working_hours" json:"working_hours"`
	IsAvailable   bool      `db:"is_available" json:"is_available"`
	AverageRating float64   `db:"average_rating" json:"average_rating"`

	// Derived on read.
	FavoriteCount int      `db:"favorite_count" json:"favorite_count"`
	Account       *Account `db:"-" json:"account,omitempty"`
}

type UpdateDoctorRequest struct {
	Specialty    *string `json:"specialty" validate:"omitempty,max=100"`
	Bio          *string `json:"bio"`
	WorkingHours *string `json:"working_hours" validate:"omitempty,max=200"`
	IsAvailable  *bool   `json:"is_available"`
}
