package consultation

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/internal/service/notification"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
	"github.com/rahat-sukari/api/pkg/messaging"
)

type fakeConsultationRepo struct {
	consultations map[uuid.UUID]*model.Consultation
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{consultations: make(map[uuid.UUID]*model.Consultation)}
}

func (f *fakeConsultationRepo) Create(_ context.Context, c *model.Consultation) error {
	c.ID = uuid.New()
	f.consultations[c.ID] = c
	return nil
}

func (f *fakeConsultationRepo) Get(_ context.Context, id uuid.UUID) (*model.Consultation, error) {
	c, ok := f.consultations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeConsultationRepo) Update(_ context.Context, c *model.Consultation) error {
	if _, ok := f.consultations[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.consultations[c.ID] = c
	return nil
}

func (f *fakeConsultationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.consultations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.consultations, id)
	return nil
}

func (f *fakeConsultationRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	var out []*model.Consultation
	for _, c := range f.consultations {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConsultationRepo) ListByDoctor(_ context.Context, doctorAccountID uuid.UUID) ([]*model.Consultation, error) {
	var out []*model.Consultation
	for _, c := range f.consultations {
		if c.DoctorID != nil && *c.DoctorID == doctorAccountID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.PatientProfile
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) GetByAccount(_ context.Context, accountID uuid.UUID) (*model.PatientProfile, error) {
	return nil, repository.ErrNotFound
}

func (f *fakePatientRepo) Update(_ context.Context, p *model.PatientProfile) error { return nil }
func (f *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error           { return nil }

func (f *fakePatientRepo) ListFollowedBy(_ context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) Get(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error { return nil }

func (f *fakeNotificationRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fixture struct {
	svc       *Service
	notifRepo *fakeNotificationRepo

	patient      *model.PatientProfile
	doctorActor  model.Actor
	patientActor model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patients := &fakePatientRepo{patients: make(map[uuid.UUID]*model.PatientProfile)}
	patient := &model.PatientProfile{
		Base:      model.Base{ID: uuid.New()},
		AccountID: uuid.New(),
		Account:   &model.Account{FirstName: "Budi", LastName: "Santoso"},
	}
	patients.patients[patient.ID] = patient

	notifRepo := &fakeNotificationRepo{}
	svc := NewService(newFakeConsultationRepo(), patients, notification.NewService(notifRepo, messaging.NopBroker{}))

	doctorID := uuid.New()
	return &fixture{
		svc:       svc,
		notifRepo: notifRepo,
		patient:   patient,
		doctorActor: model.Actor{
			AccountID: uuid.New(),
			Role:      model.RoleDoctor,
			DoctorID:  &doctorID,
		},
		patientActor: model.Actor{
			AccountID: patient.AccountID,
			Role:      model.RolePatient,
			PatientID: &patient.ID,
		},
	}
}

func (f *fixture) create(t *testing.T) *model.Consultation {
	t.Helper()
	c, err := f.svc.Create(context.Background(), f.doctorActor, &model.CreateConsultationRequest{
		PatientID:   f.patient.ID,
		ScheduledAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Diagnosis:   "Type 2 diabetes, stable",
		Treatment:   "Metformin 500mg",
	})
	require.NoError(t, err)
	return c
}

func TestCreateConsultationNotifiesPatient(t *testing.T) {
	f := newFixture(t)

	c := f.create(t)
	assert.Equal(t, f.doctorActor.AccountID, *c.DoctorID)

	notifs, _ := f.notifRepo.ListByAccount(context.Background(), f.patient.AccountID)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.RelatedConsultation, notifs[0].RelatedType)
}

func TestCreateConsultationPatientForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.patientActor, &model.CreateConsultationRequest{
		PatientID:   f.patient.ID,
		ScheduledAt: time.Now(),
		Diagnosis:   "self-diagnosis",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateAuthorOnly(t *testing.T) {
	f := newFixture(t)
	c := f.create(t)

	diagnosis := "revised"
	otherID := uuid.New()
	other := model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor, DoctorID: &otherID}
	_, err := f.svc.Update(context.Background(), other, c.ID, &model.UpdateConsultationRequest{Diagnosis: &diagnosis})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	updated, err := f.svc.Update(context.Background(), f.doctorActor, c.ID, &model.UpdateConsultationRequest{Diagnosis: &diagnosis})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Diagnosis)
}

func TestPatientMayDeleteOwnConsultation(t *testing.T) {
	f := newFixture(t)
	c := f.create(t)

	require.NoError(t, f.svc.Delete(context.Background(), f.patientActor, c.ID))

	_, err := f.svc.Get(context.Background(), f.patientActor, c.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestReportRendersEscapedHTML(t *testing.T) {
	f := newFixture(t)

	c, err := f.svc.Create(context.Background(), f.doctorActor, &model.CreateConsultationRequest{
		PatientID:   f.patient.ID,
		ScheduledAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Diagnosis:   "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Report(context.Background(), f.patientActor, c.ID, &buf))

	html := buf.String()
	assert.Contains(t, html, "Consultation Report")
	assert.Contains(t, html, "2026-03-14 10:30")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestReportStrangerForbidden(t *testing.T) {
	f := newFixture(t)
	c := f.create(t)

	strangerID := uuid.New()
	stranger := model.Actor{AccountID: uuid.New(), Role: model.RolePatient, PatientID: &strangerID}

	var buf bytes.Buffer
	err := f.svc.Report(context.Background(), stranger, c.ID, &buf)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
