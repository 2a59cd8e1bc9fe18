package patient

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/internal/storage"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

const pictureDir = "profile-pictures"

type Service struct {
	repo        repository.PatientRepository
	readings    repository.GlucoseReadingRepository
	medications repository.MedicationRepository
	notes       repository.DoctorNoteRepository
	store       storage.Store
}

func NewService(
	repo repository.PatientRepository,
	readings repository.GlucoseReadingRepository,
	medications repository.MedicationRepository,
	notes repository.DoctorNoteRepository,
	store storage.Store,
) *Service {
	return &Service{
		repo:        repo,
		readings:    readings,
		medications: medications,
		notes:       notes,
		store:       store,
	}
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.PatientProfile, error) {
	patient, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, patient.ID) {
		return nil, apperrors.Forbidden()
	}
	return patient, nil
}

// Update only touches the fields present in the request. A patient
// edits their own profile; doctors cannot edit patient profiles.
func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdatePatientRequest) (*model.PatientProfile, error) {
	patient, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsPatient(patient.ID) {
		return nil, apperrors.Forbidden()
	}

	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = *req.PhoneNumber
	}
	if req.DiabetesType != nil {
		patient.DiabetesType = *req.DiabetesType
	}
	if req.DiagnosisDate != nil {
		patient.DiagnosisDate = req.DiagnosisDate
	}
	if req.MedicalNotes != nil {
		patient.MedicalNotes = *req.MedicalNotes
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

// UploadPicture saves the new picture first, then points the profile at
// it. A failed profile update rolls the new file back out of the store;
// on success the previous picture is removed best effort.
func (s *Service) UploadPicture(ctx context.Context, actor model.Actor, id uuid.UUID, filename string, src io.Reader) (*model.PatientProfile, error) {
	patient, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsPatient(patient.ID) {
		return nil, apperrors.Forbidden()
	}

	relPath, err := s.store.Save(pictureDir, patient.ID, filename, src)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	previous := patient.ProfilePicture
	patient.ProfilePicture = relPath
	if err := s.repo.Update(ctx, patient); err != nil {
		if rmErr := s.store.Remove(relPath); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", relPath).Msg("orphaned picture cleanup failed")
		}
		return nil, apperrors.Internal(err)
	}

	if previous != "" {
		if err := s.store.Remove(previous); err != nil {
			log.Warn().Err(err).Str("path", previous).Msg("replaced picture removal failed")
		}
	}
	return patient, nil
}

// OpenPicture returns the profile picture contents, gated the same way
// as the profile itself.
func (s *Service) OpenPicture(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.PatientProfile, io.ReadCloser, error) {
	patient, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	if patient.ProfilePicture == "" {
		return nil, nil, apperrors.NotFound("profile picture")
	}
	rc, err := s.store.Open(patient.ProfilePicture)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	return patient, rc, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	patient, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !actor.OwnsPatient(patient.ID) {
		return apperrors.Forbidden()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// List is scoped to the caller: a doctor sees their follow list, never
// the whole patient population, and a patient sees just themselves.
func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.PatientProfile, error) {
	switch {
	case actor.IsDoctor() && actor.DoctorID != nil:
		patients, err := s.repo.ListFollowedBy(ctx, *actor.DoctorID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		return patients, nil
	case actor.IsPatient() && actor.PatientID != nil:
		patient, err := s.fetch(ctx, *actor.PatientID)
		if err != nil {
			return nil, err
		}
		return []*model.PatientProfile{patient}, nil
	default:
		return nil, apperrors.Forbidden()
	}
}

// MedicalData assembles the profile with every clinical record embedded.
func (s *Service) MedicalData(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.MedicalData, error) {
	patient, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, patient.ID) {
		return nil, apperrors.Forbidden()
	}

	readings, err := s.readings.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	medications, err := s.medications.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	notes, err := s.notes.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.MedicalData{
		Profile:     patient,
		Readings:    readings,
		Medications: medications,
		Notes:       notes,
	}, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	patient, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}
