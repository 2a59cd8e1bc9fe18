package reading

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type fakeReadingRepo struct {
	readings map[uuid.UUID]*model.GlucoseReading
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{readings: make(map[uuid.UUID]*model.GlucoseReading)}
}

func (f *fakeReadingRepo) Create(_ context.Context, r *model.GlucoseReading) error {
	r.ID = uuid.New()
	f.readings[r.ID] = r
	return nil
}

func (f *fakeReadingRepo) Get(_ context.Context, id uuid.UUID) (*model.GlucoseReading, error) {
	r, ok := f.readings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeReadingRepo) UpdateNotes(_ context.Context, id uuid.UUID, notes string) error {
	r, ok := f.readings[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Notes = notes
	return nil
}

func (f *fakeReadingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.readings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.readings, id)
	return nil
}

func (f *fakeReadingRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.GlucoseReading, error) {
	var out []*model.GlucoseReading
	for _, r := range f.readings {
		if r.PatientID == patientID {
			out = append(out, r)
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

func TestCreateReadingDefaultsMeasuredAt(t *testing.T) {
	svc := NewService(newFakeReadingRepo())
	actor := patientActor()

	before := time.Now()
	r, err := svc.Create(context.Background(), actor, &model.CreateGlucoseReadingRequest{
		Value:       126.5,
		ReadingType: model.ReadingFasting,
	})
	require.NoError(t, err)
	assert.Equal(t, *actor.PatientID, r.PatientID)
	assert.False(t, r.MeasuredAt.Before(before))
}

func TestCreateReadingDoctorForbidden(t *testing.T) {
	svc := NewService(newFakeReadingRepo())

	_, err := svc.Create(context.Background(), doctorActor(), &model.CreateGlucoseReadingRequest{
		Value:       126.5,
		ReadingType: model.ReadingFasting,
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateOnlyTouchesNotes(t *testing.T) {
	repo := newFakeReadingRepo()
	svc := NewService(repo)
	actor := patientActor()

	r, err := svc.Create(context.Background(), actor, &model.CreateGlucoseReadingRequest{
		Value:       126.5,
		ReadingType: model.ReadingFasting,
	})
	require.NoError(t, err)

	notes := "after morning walk"
	updated, err := svc.Update(context.Background(), actor, r.ID, &model.UpdateGlucoseReadingRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "after morning walk", updated.Notes)
	assert.Equal(t, 126.5, updated.Value)
	assert.Equal(t, model.ReadingFasting, updated.ReadingType)
}

func TestDoctorReadsButCannotWrite(t *testing.T) {
	svc := NewService(newFakeReadingRepo())
	owner := patientActor()

	r, err := svc.Create(context.Background(), owner, &model.CreateGlucoseReadingRequest{
		Value:       126.5,
		ReadingType: model.ReadingFasting,
	})
	require.NoError(t, err)

	doctor := doctorActor()
	got, err := svc.Get(context.Background(), doctor, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	notes := "doctor edit"
	_, err = svc.Update(context.Background(), doctor, r.ID, &model.UpdateGlucoseReadingRequest{Notes: &notes})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	err = svc.Delete(context.Background(), doctor, r.ID)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestOtherPatientCannotRead(t *testing.T) {
	svc := NewService(newFakeReadingRepo())
	owner := patientActor()

	r, err := svc.Create(context.Background(), owner, &model.CreateGlucoseReadingRequest{
		Value:       126.5,
		ReadingType: model.ReadingFasting,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), patientActor(), r.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUnknownReadingNotFound(t *testing.T) {
	svc := NewService(newFakeReadingRepo())

	_, err := svc.Get(context.Background(), patientActor(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
