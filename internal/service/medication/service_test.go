package medication

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type fakeMedicationRepo struct {
	medications map[uuid.UUID]*model.Medication
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{medications: make(map[uuid.UUID]*model.Medication)}
}

func (f *fakeMedicationRepo) Create(_ context.Context, m *model.Medication) error {
	m.ID = uuid.New()
	f.medications[m.ID] = m
	return nil
}

func (f *fakeMedicationRepo) Get(_ context.Context, id uuid.UUID) (*model.Medication, error) {
	m, ok := f.medications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMedicationRepo) Update(_ context.Context, m *model.Medication) error {
	if _, ok := f.medications[m.ID]; !ok {
		return repository.ErrNotFound
	}
	f.medications[m.ID] = m
	return nil
}

func (f *fakeMedicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.medications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.medications, id)
	return nil
}

func (f *fakeMedicationRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Medication, error) {
	var out []*model.Medication
	for _, m := range f.medications {
		if m.PatientID == patientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func patientActor() model.Actor {
	patientID := uuid.New()
	return model.Actor{AccountID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}
}

func doctorActor() model.Actor {
	doctorID := uuid.New()
	return model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}
}

func TestCreateDefaultsAdministrationMethod(t *testing.T) {
	svc := NewService(newFakeMedicationRepo())
	actor := patientActor()

	m, err := svc.Create(context.Background(), actor, &model.CreateMedicationRequest{
		Name:   "Metformin",
		Dosage: "500mg",
	})
	require.NoError(t, err)
	assert.Equal(t, *actor.PatientID, m.PatientID)
	assert.Equal(t, model.AdministrationOral, m.AdministrationMethod)
}

func TestCreateByDoctorForbidden(t *testing.T) {
	svc := NewService(newFakeMedicationRepo())

	_, err := svc.Create(context.Background(), doctorActor(), &model.CreateMedicationRequest{
		Name: "Metformin",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdatePartialPreservesOtherFields(t *testing.T) {
	repo := newFakeMedicationRepo()
	svc := NewService(repo)
	actor := patientActor()

	m, err := svc.Create(context.Background(), actor, &model.CreateMedicationRequest{
		Name:      "Metformin",
		Dosage:    "500mg",
		Frequency: "twice daily",
	})
	require.NoError(t, err)

	dosage := "850mg"
	updated, err := svc.Update(context.Background(), actor, m.ID, &model.UpdateMedicationRequest{Dosage: &dosage})
	require.NoError(t, err)
	assert.Equal(t, "850mg", updated.Dosage)
	assert.Equal(t, "Metformin", updated.Name)
	assert.Equal(t, "twice daily", updated.Frequency)
}

func TestDoctorReadsButCannotWrite(t *testing.T) {
	svc := NewService(newFakeMedicationRepo())
	owner := patientActor()

	m, err := svc.Create(context.Background(), owner, &model.CreateMedicationRequest{
		Name: "Metformin",
	})
	require.NoError(t, err)

	doctor := doctorActor()
	got, err := svc.Get(context.Background(), doctor, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	name := "Insulin"
	_, err = svc.Update(context.Background(), doctor, m.ID, &model.UpdateMedicationRequest{Name: &name})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	err = svc.Delete(context.Background(), doctor, m.ID)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestOtherPatientCannotRead(t *testing.T) {
	svc := NewService(newFakeMedicationRepo())
	owner := patientActor()

	m, err := svc.Create(context.Background(), owner, &model.CreateMedicationRequest{
		Name: "Metformin",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), patientActor(), m.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUnknownMedicationNotFound(t *testing.T) {
	svc := NewService(newFakeMedicationRepo())

	_, err := svc.Get(context.Background(), patientActor(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
