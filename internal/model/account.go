package model

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Account is an authenticated identity. IsDoctor selects which profile
// was created alongside it at registration time.
type Account struct {
	Base
	Email        string `db:"email" json:"email"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	IsDoctor     bool   `db:"is_doctor" json:"is_doctor"`
}

// FullName is derived from the two stored name fields, never stored itself.
func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

func (a *Account) Role() Role {
	if a.IsDoctor {
		return RoleDoctor
	}
	return RolePatient
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=patient doctor"`
}

// SplitName splits a display name into first/last on the first whitespace
// boundary. The remainder keeps any embedded whitespace verbatim.
func SplitName(name string) (first, last string) {
	idx := strings.IndexFunc(name, unicode.IsSpace)
	if idx < 0 {
		return name, ""
	}
	_, size := utf8.DecodeRuneInString(name[idx:])
	return name[:idx], name[idx+size:]
}

type LoginRequest struct {
	// Login accepts either the username or the email address.
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by the credential-exchange endpoint.
type TokenResponse struct {
	Token     string     `json:"token"`
	AccountID uuid.UUID  `json:"account_id"`
	Role      Role       `json:"role"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
}
