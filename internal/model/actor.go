package model

import (
	"github.com/google/uuid"
)

// Actor is the authenticated caller as seen by the access predicates:
// the account plus whichever profile its role selected.
type Actor struct {
	AccountID uuid.UUID
	Role      Role
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

// OwnsPatient reports whether the actor's own patient profile is the
// given one. Missing profile means no.
func (a Actor) OwnsPatient(patientID uuid.UUID) bool {
	return a.PatientID != nil && *a.PatientID == patientID
}

// OwnsDoctor reports whether the actor's own doctor profile is the
// given one.
func (a Actor) OwnsDoctor(doctorID uuid.UUID) bool {
	return a.DoctorID != nil && *a.DoctorID == doctorID
}
