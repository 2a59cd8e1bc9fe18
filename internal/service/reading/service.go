package reading

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type Service struct {
	repo repository.GlucoseReadingRepository
}

func NewService(repo repository.GlucoseReadingRepository) *Service {
	return &Service{repo: repo}
}

// Create records a reading for the calling patient. MeasuredAt falls
// back to the server clock when omitted.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateGlucoseReadingRequest) (*model.GlucoseReading, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}

	measuredAt := time.Now()
	if req.MeasuredAt != nil {
		measuredAt = *req.MeasuredAt
	}

	reading := &model.GlucoseReading{
		PatientID:   *actor.PatientID,
		Value:       req.Value,
		ReadingType: req.ReadingType,
		Notes:       req.Notes,
		MeasuredAt:  measuredAt,
	}
	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, apperrors.Internal(err)
	}
	return reading, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.GlucoseReading, error) {
	reading, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, reading.PatientID) {
		return nil, apperrors.Forbidden()
	}
	return reading, nil
}

// Update can only change the notes. The measured value, type and
// timestamp are fixed once recorded.
func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateGlucoseReadingRequest) (*model.GlucoseReading, error) {
	reading, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWritePatientRecord(actor, reading.PatientID) {
		return nil, apperrors.Forbidden()
	}

	if err := s.repo.UpdateNotes(ctx, id, *req.Notes); err != nil {
		return nil, apperrors.Internal(err)
	}
	reading.Notes = *req.Notes
	return reading, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	reading, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWritePatientRecord(actor, reading.PatientID) {
		return apperrors.Forbidden()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]*model.GlucoseReading, error) {
	if !access.CanReadPatientRecord(actor, patientID) {
		return nil, apperrors.Forbidden()
	}
	readings, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return readings, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.GlucoseReading, error) {
	reading, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("glucose reading")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reading, nil
}
