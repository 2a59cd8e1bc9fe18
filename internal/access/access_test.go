package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rahat-sukari/api/internal/model"
)

func patientActor(patientID uuid.UUID) model.Actor {
	return model.Actor{
		AccountID: uuid.New(),
		Role:      model.RolePatient,
		PatientID: &patientID,
	}
}

func doctorActor(doctorID uuid.UUID) model.Actor {
	return model.Actor{
		AccountID: uuid.New(),
		Role:      model.RoleDoctor,
		DoctorID:  &doctorID,
	}
}

func TestCanReadPatientRecord(t *testing.T) {
	ownerID := uuid.New()

	assert.True(t, CanReadPatientRecord(doctorActor(uuid.New()), ownerID), "doctor reads any patient record")
	assert.True(t, CanReadPatientRecord(patientActor(ownerID), ownerID), "patient reads own record")
	assert.False(t, CanReadPatientRecord(patientActor(uuid.New()), ownerID), "patient denied on another's record")
	assert.False(t, CanReadPatientRecord(model.Actor{AccountID: uuid.New(), Role: model.RolePatient}, ownerID),
		"missing profile is a deny, not an error")
}

func TestCanWritePatientRecord(t *testing.T) {
	ownerID := uuid.New()

	assert.True(t, CanWritePatientRecord(patientActor(ownerID), ownerID))
	assert.False(t, CanWritePatientRecord(patientActor(uuid.New()), ownerID))
	assert.False(t, CanWritePatientRecord(doctorActor(uuid.New()), ownerID),
		"doctors author through their own record types, not patient records")
}

func TestCanModifyDoctorRecord(t *testing.T) {
	author := doctorActor(uuid.New())

	assert.True(t, CanModifyDoctorRecord(author, &author.AccountID))

	other := doctorActor(uuid.New())
	assert.False(t, CanModifyDoctorRecord(other, &author.AccountID), "only the authoring doctor")
	assert.False(t, CanModifyDoctorRecord(author, nil), "record with removed author stays frozen")

	patient := patientActor(uuid.New())
	assert.False(t, CanModifyDoctorRecord(patient, &patient.AccountID))
}

func TestCanDeleteConsultation(t *testing.T) {
	ownerID := uuid.New()
	author := doctorActor(uuid.New())

	assert.True(t, CanDeleteConsultation(patientActor(ownerID), ownerID, &author.AccountID),
		"owning patient may delete their consultation")
	assert.True(t, CanDeleteConsultation(author, ownerID, &author.AccountID))
	assert.False(t, CanDeleteConsultation(patientActor(uuid.New()), ownerID, &author.AccountID))
}

func TestCanRespondToAppointment(t *testing.T) {
	doctorID := uuid.New()

	assert.True(t, CanRespondToAppointment(doctorActor(doctorID), doctorID))
	assert.False(t, CanRespondToAppointment(doctorActor(uuid.New()), doctorID), "only the addressed doctor")
	assert.False(t, CanRespondToAppointment(patientActor(uuid.New()), doctorID))
}

func TestCanViewAppointment(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()

	assert.True(t, CanViewAppointment(patientActor(patientID), patientID, doctorID))
	assert.True(t, CanViewAppointment(doctorActor(doctorID), patientID, doctorID))
	assert.False(t, CanViewAppointment(patientActor(uuid.New()), patientID, doctorID))
	assert.False(t, CanViewAppointment(doctorActor(uuid.New()), patientID, doctorID))
}

func TestCanViewConsultationReport(t *testing.T) {
	ownerID := uuid.New()
	author := doctorActor(uuid.New())

	assert.True(t, CanViewConsultationReport(patientActor(ownerID), ownerID, &author.AccountID))
	assert.True(t, CanViewConsultationReport(author, ownerID, &author.AccountID))
	assert.False(t, CanViewConsultationReport(doctorActor(uuid.New()), ownerID, &author.AccountID),
		"report is gated to the authoring doctor, not doctors at large")
}
