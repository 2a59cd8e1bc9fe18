package doctor

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

type fakeDoctorRepo struct {
	doctors   map[uuid.UUID]*model.DoctorProfile
	listCalls int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.DoctorProfile)}
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDoctorRepo) GetByAccount(_ context.Context, accountID uuid.UUID) (*model.DoctorProfile, error) {
	for _, d := range f.doctors {
		if d.AccountID == accountID {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) Update(_ context.Context, d *model.DoctorProfile) error {
	if _, ok := f.doctors[d.ID]; !ok {
		return repository.ErrNotFound
	}
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) List(_ context.Context) ([]*model.DoctorProfile, error) {
	f.listCalls++
	var out []*model.DoctorProfile
	for _, d := range f.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDoctorRepo) FollowPatient(_ context.Context, doctorID, patientID uuid.UUID) error {
	return nil
}

func (f *fakeDoctorRepo) IsFollowing(_ context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	return false, nil
}

type favoriteKey struct {
	patientID uuid.UUID
	doctorID  uuid.UUID
}

type fakeFavoriteRepo struct {
	favorites map[favoriteKey]bool
	doctors   *fakeDoctorRepo
}

func (f *fakeFavoriteRepo) Add(_ context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	key := favoriteKey{patientID, doctorID}
	if f.favorites[key] {
		return false, nil
	}
	f.favorites[key] = true
	return true, nil
}

func (f *fakeFavoriteRepo) Remove(_ context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	key := favoriteKey{patientID, doctorID}
	if !f.favorites[key] {
		return false, nil
	}
	delete(f.favorites, key)
	return true, nil
}

func (f *fakeFavoriteRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.DoctorProfile, error) {
	var out []*model.DoctorProfile
	for key := range f.favorites {
		if key.patientID == patientID {
			if d, ok := f.doctors.doctors[key.doctorID]; ok {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) CountForDoctor(_ context.Context, doctorID uuid.UUID) (int, error) {
	n := 0
	for key := range f.favorites {
		if key.doctorID == doctorID {
			n++
		}
	}
	return n, nil
}

func newTestService() (*Service, *fakeDoctorRepo, *model.DoctorProfile, model.Actor) {
	doctors := newFakeDoctorRepo()
	favorites := &fakeFavoriteRepo{favorites: make(map[favoriteKey]bool), doctors: doctors}

	d := &model.DoctorProfile{
		Base:      model.Base{ID: uuid.New()},
		AccountID: uuid.New(),
		Specialty: "Endocrinology",
	}
	doctors.doctors[d.ID] = d

	patientID := uuid.New()
	patient := model.Actor{AccountID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}

	return NewService(doctors, favorites), doctors, d, patient
}

func TestFavoriteIdempotent(t *testing.T) {
	svc, _, d, patient := newTestService()

	first, err := svc.Favorite(context.Background(), patient, d.ID)
	require.NoError(t, err)
	assert.True(t, first.Favorited)
	assert.False(t, first.AlreadyFavorited)

	// second call reports the existing favorite instead of failing
	second, err := svc.Favorite(context.Background(), patient, d.ID)
	require.NoError(t, err)
	assert.True(t, second.Favorited)
	assert.True(t, second.AlreadyFavorited)

	favorites, err := svc.ListFavorites(context.Background(), patient)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestFavoriteUnknownDoctor(t *testing.T) {
	svc, _, _, patient := newTestService()

	_, err := svc.Favorite(context.Background(), patient, uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestFavoriteDoctorCallerForbidden(t *testing.T) {
	svc, _, d, _ := newTestService()

	doctorActor := model.Actor{AccountID: d.AccountID, Role: model.RoleDoctor, DoctorID: &d.ID}
	_, err := svc.Favorite(context.Background(), doctorActor, d.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUnfavorite(t *testing.T) {
	svc, _, d, patient := newTestService()

	_, err := svc.Favorite(context.Background(), patient, d.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfavorite(context.Background(), patient, d.ID))

	// removing again is a 404, not a silent no-op
	err = svc.Unfavorite(context.Background(), patient, d.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestListServedFromCache(t *testing.T) {
	svc, doctors, _, _ := newTestService()

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, doctors.listCalls)
}

func TestUpdateOwnerOnly(t *testing.T) {
	svc, _, d, patient := newTestService()

	bio := "Diabetes care"
	_, err := svc.Update(context.Background(), patient, d.ID, &model.UpdateDoctorRequest{Bio: &bio})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	owner := model.Actor{AccountID: d.AccountID, Role: model.RoleDoctor, DoctorID: &d.ID}
	updated, err := svc.Update(context.Background(), owner, d.ID, &model.UpdateDoctorRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Diabetes care", updated.Bio)
}
