// Package access holds the pure allow/deny predicates every handler
// gates on. Predicates never error: a missing ownership relationship
// is a deny.
package access

import (
	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/model"
)

// CanReadPatientRecord gates reads of a patient profile or any clinical
// record it owns. Doctors read any patient's records; a patient only
// their own.
func CanReadPatientRecord(actor model.Actor, ownerPatientID uuid.UUID) bool {
	if actor.IsDoctor() {
		return true
	}
	return actor.OwnsPatient(ownerPatientID)
}

// CanWritePatientRecord gates writes to patient-authored clinical
// records (readings, medications, attachments, alerts) and the profile
// itself. Only the owning patient writes.
func CanWritePatientRecord(actor model.Actor, ownerPatientID uuid.UUID) bool {
	return actor.OwnsPatient(ownerPatientID)
}

// CanAuthorDoctorRecord gates creation of doctor notes and
// consultations.
func CanAuthorDoctorRecord(actor model.Actor) bool {
	return actor.IsDoctor()
}

// CanModifyDoctorRecord gates edits and deletes of a doctor-authored
// record. Only the authoring doctor may; a record whose author was
// removed stays frozen.
func CanModifyDoctorRecord(actor model.Actor, authorAccountID *uuid.UUID) bool {
	if !actor.IsDoctor() || authorAccountID == nil {
		return false
	}
	return actor.AccountID == *authorAccountID
}

// CanDeleteConsultation allows the owning patient to delete their own
// consultation (but not edit it), and the authoring doctor likewise.
func CanDeleteConsultation(actor model.Actor, ownerPatientID uuid.UUID, authorAccountID *uuid.UUID) bool {
	if actor.OwnsPatient(ownerPatientID) {
		return true
	}
	return CanModifyDoctorRecord(actor, authorAccountID)
}

// CanViewConsultationReport gates the rendered consultation report.
func CanViewConsultationReport(actor model.Actor, ownerPatientID uuid.UUID, authorAccountID *uuid.UUID) bool {
	if actor.OwnsPatient(ownerPatientID) {
		return true
	}
	return actor.IsDoctor() && authorAccountID != nil && actor.AccountID == *authorAccountID
}

// CanRespondToAppointment gates the accept/reject decision: only the
// addressed doctor profile's owner.
func CanRespondToAppointment(actor model.Actor, targetDoctorID uuid.UUID) bool {
	return actor.OwnsDoctor(targetDoctorID)
}

// CanViewAppointment lets either side of the appointment see it.
func CanViewAppointment(actor model.Actor, patientID, doctorID uuid.UUID) bool {
	return actor.OwnsPatient(patientID) || actor.OwnsDoctor(doctorID)
}

// CanReadNotification gates a notification to its recipient.
func CanReadNotification(actor model.Actor, recipientAccountID uuid.UUID) bool {
	return actor.AccountID == recipientAccountID
}
