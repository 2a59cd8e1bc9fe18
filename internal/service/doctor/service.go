package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

const (
	doctorListKey = "doctors:list"
	doctorListTTL = 30 * time.Second
)

type Service struct {
	repo      repository.DoctorRepository
	favorites repository.FavoriteRepository
	cache     *gocache.Cache
}

func NewService(repo repository.DoctorRepository, favorites repository.FavoriteRepository) *Service {
	return &Service{
		repo:      repo,
		favorites: favorites,
		cache:     gocache.New(doctorListTTL, 5*time.Minute),
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	return s.fetch(ctx, id)
}

// List is visible to every authenticated account; patients use it to
// pick a doctor to book with. The directory changes rarely, so it is
// served from a short-lived cache.
func (s *Service) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	if cached, ok := s.cache.Get(doctorListKey); ok {
		return cached.([]*model.DoctorProfile), nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.Set(doctorListKey, doctors, doctorListTTL)
	return doctors, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.DoctorProfile, error) {
	doctor, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsDoctor(doctor.ID) {
		return nil, apperrors.Forbidden()
	}

	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.WorkingHours != nil {
		doctor.WorkingHours = *req.WorkingHours
	}
	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.Delete(doctorListKey)
	return doctor, nil
}

// Favorite is idempotent: favoriting an already-favorited doctor
// reports AlreadyFavorited instead of failing.
func (s *Service) Favorite(ctx context.Context, actor model.Actor, doctorID uuid.UUID) (*model.FavoriteResult, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}
	if _, err := s.fetch(ctx, doctorID); err != nil {
		return nil, err
	}

	inserted, err := s.favorites.Add(ctx, *actor.PatientID, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.FavoriteResult{Favorited: true, AlreadyFavorited: !inserted}, nil
}

func (s *Service) Unfavorite(ctx context.Context, actor model.Actor, doctorID uuid.UUID) error {
	if !actor.IsPatient() || actor.PatientID == nil {
		return apperrors.Forbidden()
	}

	removed, err := s.favorites.Remove(ctx, *actor.PatientID, doctorID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !removed {
		return apperrors.NotFound("favorite")
	}
	return nil
}

func (s *Service) ListFavorites(ctx context.Context, actor model.Actor) ([]*model.DoctorProfile, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}
	doctors, err := s.favorites.ListByPatient(ctx, *actor.PatientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}
