package attachment

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/internal/storage"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type fakeAttachmentRepo struct {
	attachments map[uuid.UUID]*model.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[uuid.UUID]*model.Attachment)}
}

func (f *fakeAttachmentRepo) Create(_ context.Context, a *model.Attachment) error {
	a.ID = uuid.New()
	f.attachments[a.ID] = a
	return nil
}

func (f *fakeAttachmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Attachment, error) {
	a, ok := f.attachments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAttachmentRepo) Update(_ context.Context, a *model.Attachment) error {
	if _, ok := f.attachments[a.ID]; !ok {
		return repository.ErrNotFound
	}
	f.attachments[a.ID] = a
	return nil
}

func (f *fakeAttachmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.attachments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.attachments, id)
	return nil
}

func (f *fakeAttachmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Attachment, error) {
	var out []*model.Attachment
	for _, a := range f.attachments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, storage.Store, model.Actor) {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	patientID := uuid.New()
	actor := model.Actor{AccountID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}
	return NewService(newFakeAttachmentRepo(), store), store, actor
}

func TestUploadAndDownload(t *testing.T) {
	svc, _, actor := newTestService(t)

	a, err := svc.Upload(context.Background(), actor, "lab-results.pdf", "HbA1c panel", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "lab-results.pdf", a.FileName)
	assert.Equal(t, "HbA1c panel", a.Description)
	assert.NotEmpty(t, a.FilePath)

	got, rc, err := svc.Open(context.Background(), actor, a.ID)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(body))
	assert.Equal(t, a.ID, got.ID)
}

func TestUploadDoctorForbidden(t *testing.T) {
	svc, _, _ := newTestService(t)
	doctorID := uuid.New()
	doctor := model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}

	_, err := svc.Upload(context.Background(), doctor, "x.pdf", "", strings.NewReader("x"))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	svc, store, actor := newTestService(t)

	a, err := svc.Upload(context.Background(), actor, "lab-results.pdf", "", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), actor, a.ID))

	// metadata is gone
	_, err = svc.Get(context.Background(), actor, a.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// backing file is gone too
	_, err = store.Open(a.FilePath)
	assert.Error(t, err)
}

func TestDoctorCanReadPatientAttachment(t *testing.T) {
	svc, _, actor := newTestService(t)

	a, err := svc.Upload(context.Background(), actor, "lab-results.pdf", "", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	doctorID := uuid.New()
	doctor := model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}
	got, err := svc.Get(context.Background(), doctor, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// but cannot delete it
	err = svc.Delete(context.Background(), doctor, a.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateDescription(t *testing.T) {
	svc, _, actor := newTestService(t)

	a, err := svc.Upload(context.Background(), actor, "lab-results.pdf", "old", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	desc := "new description"
	updated, err := svc.Update(context.Background(), actor, a.ID, &model.UpdateAttachmentRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "new description", updated.Description)
}
