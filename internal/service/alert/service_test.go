package alert

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

type fakeAlertRepo struct {
	alerts map[uuid.UUID]*model.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[uuid.UUID]*model.Alert)}
}

func (f *fakeAlertRepo) Create(_ context.Context, a *model.Alert) error {
	a.ID = uuid.New()
	f.alerts[a.ID] = a
	return nil
}

func (f *fakeAlertRepo) Get(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	a, ok := f.alerts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAlertRepo) Update(_ context.Context, a *model.Alert) error {
	if _, ok := f.alerts[a.ID]; !ok {
		return repository.ErrNotFound
	}
	f.alerts[a.ID] = a
	return nil
}

func (f *fakeAlertRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.alerts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.alerts, id)
	return nil
}

func (f *fakeAlertRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Alert, error) {
	var out []*model.Alert
	for _, a := range f.alerts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlertRepo) SetActiveForPatient(_ context.Context, patientID uuid.UUID, active bool) (int64, error) {
	var n int64
	for _, a := range f.alerts {
		if a.PatientID == patientID && a.IsActive != active {
			a.IsActive = active
			n++
		}
	}
	return n, nil
}

func patientActor() model.Actor {
	patientID := uuid.New()
	return model.Actor{AccountID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}
}

func TestCreateAlertDefaults(t *testing.T) {
	svc := NewService(newFakeAlertRepo())
	actor := patientActor()

	a, err := svc.Create(context.Background(), actor, &model.CreateAlertRequest{
		AlertType:   "medication",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	assert.Equal(t, model.RecurrenceOnce, a.Recurrence)
	assert.Equal(t, *actor.PatientID, a.PatientID)
}

func TestToggleAll(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo)
	actor := patientActor()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), actor, &model.CreateAlertRequest{
			AlertType:   "measurement",
			ScheduledAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
	}

	// another patient's alert stays out of scope
	other := patientActor()
	_, err := svc.Create(context.Background(), other, &model.CreateAlertRequest{
		AlertType:   "measurement",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	resp, err := svc.ToggleAll(context.Background(), actor, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Updated)

	alerts, err := svc.List(context.Background(), actor)
	require.NoError(t, err)
	for _, a := range alerts {
		assert.False(t, a.IsActive)
	}

	otherAlerts, err := svc.List(context.Background(), other)
	require.NoError(t, err)
	require.Len(t, otherAlerts, 1)
	assert.True(t, otherAlerts[0].IsActive)
}

func TestToggleAllNoAlerts(t *testing.T) {
	svc := NewService(newFakeAlertRepo())

	resp, err := svc.ToggleAll(context.Background(), patientActor(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Updated)
}

func TestToggleAllDoctorForbidden(t *testing.T) {
	svc := NewService(newFakeAlertRepo())
	doctorID := uuid.New()
	doctor := model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}

	_, err := svc.ToggleAll(context.Background(), doctor, true)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateOtherPatientForbidden(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo)
	owner := patientActor()

	a, err := svc.Create(context.Background(), owner, &model.CreateAlertRequest{
		AlertType:   "medication",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	active := false
	_, err = svc.Update(context.Background(), patientActor(), a.ID, &model.UpdateAlertRequest{IsActive: &active})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
