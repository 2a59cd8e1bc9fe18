package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
	"github.com/rahat-sukari/api/pkg/messaging"
)

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*model.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) Get(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	n, ok := f.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, nil
}

// failingBroker simulates a dead message bus.
type failingBroker struct{ messaging.NopBroker }

func (failingBroker) Publish(_ context.Context, _ string, _ interface{}) error {
	return assert.AnError
}

func TestNotifyPersistsDespiteBrokerFailure(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, failingBroker{})

	accountID := uuid.New()
	relID := uuid.New()
	err := svc.Notify(context.Background(), accountID, "hello", model.RelatedAppointment, &relID)
	require.NoError(t, err)

	actor := model.Actor{AccountID: accountID, Role: model.RolePatient}
	notifs, err := svc.List(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "hello", notifs[0].Message)
	assert.False(t, notifs[0].IsRead)
}

func TestMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, messaging.NopBroker{})

	accountID := uuid.New()
	require.NoError(t, svc.Notify(context.Background(), accountID, "hello", "", nil))

	actor := model.Actor{AccountID: accountID, Role: model.RolePatient}
	notifs, err := svc.List(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, notifs, 1)

	n, err := svc.MarkRead(context.Background(), actor, notifs[0].ID)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
}

func TestMarkReadWrongRecipientForbidden(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, messaging.NopBroker{})

	recipient := uuid.New()
	require.NoError(t, svc.Notify(context.Background(), recipient, "hello", "", nil))

	notifs, err := svc.List(context.Background(), model.Actor{AccountID: recipient})
	require.NoError(t, err)
	require.Len(t, notifs, 1)

	stranger := model.Actor{AccountID: uuid.New(), Role: model.RolePatient}
	_, err = svc.MarkRead(context.Background(), stranger, notifs[0].ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
