package medication

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type Service struct {
	repo repository.MedicationRepository
}

func NewService(repo repository.MedicationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateMedicationRequest) (*model.Medication, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}

	method := req.AdministrationMethod
	if method == "" {
		method = model.AdministrationOral
	}

	medication := &model.Medication{
		PatientID:            *actor.PatientID,
		Name:                 req.Name,
		Dosage:               req.Dosage,
		Frequency:            req.Frequency,
		AdministrationMethod: method,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Notes:                req.Notes,
	}
	if err := s.repo.Create(ctx, medication); err != nil {
		return nil, apperrors.Internal(err)
	}
	return medication, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Medication, error) {
	medication, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, medication.PatientID) {
		return nil, apperrors.Forbidden()
	}
	return medication, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	medication, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWritePatientRecord(actor, medication.PatientID) {
		return nil, apperrors.Forbidden()
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Dosage != nil {
		medication.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		medication.Frequency = *req.Frequency
	}
	if req.AdministrationMethod != nil {
		medication.AdministrationMethod = *req.AdministrationMethod
	}
	if req.StartDate != nil {
		medication.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		medication.EndDate = req.EndDate
	}
	if req.Notes != nil {
		medication.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, medication); err != nil {
		return nil, apperrors.Internal(err)
	}
	return medication, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	medication, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWritePatientRecord(actor, medication.PatientID) {
		return apperrors.Forbidden()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]*model.Medication, error) {
	if !access.CanReadPatientRecord(actor, patientID) {
		return nil, apperrors.Forbidden()
	}
	medications, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return medications, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	medication, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("medication")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return medication, nil
}
