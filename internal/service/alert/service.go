package alert

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
	repo repository.AlertRepository
}

func NewService(repo repository.AlertRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateAlertRequest) (*model.Alert, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}

	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceOnce
	}

	alert := &model.Alert{
		PatientID:   *actor.PatientID,
		AlertType:   req.AlertType,
		Message:     req.Message,
		ScheduledAt: req.ScheduledAt,
		Recurrence:  recurrence,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, apperrors.Internal(err)
	}
	return alert, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Alert, error) {
	alert, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, alert.PatientID) {
		return nil, apperrors.Forbidden()
	}
	return alert, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateAlertRequest) (*model.Alert, error) {
	alert, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWritePatientRecord(actor, alert.PatientID) {
		return nil, apperrors.Forbidden()
	}

	if req.AlertType != nil {
		alert.AlertType = *req.AlertType
	}
	if req.Message != nil {
		alert.Message = *req.Message
	}
	if req.ScheduledAt != nil {
		alert.ScheduledAt = *req.ScheduledAt
	}
	if req.Recurrence != nil {
		alert.Recurrence = *req.Recurrence
	}
	if req.IsActive != nil {
		alert.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, alert); err != nil {
		return nil, apperrors.Internal(err)
	}
	return alert, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	alert, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWritePatientRecord(actor, alert.PatientID) {
		return apperrors.Forbidden()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.Alert, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}
	alerts, err := s.repo.ListByPatient(ctx, *actor.PatientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return alerts, nil
}

// ToggleAll flips is_active on every alert the caller owns in one
// set-based update and reports how many rows changed. Zero alerts is a
// success with Updated == 0, not an error.
func (s *Service) ToggleAll(ctx context.Context, actor model.Actor, active bool) (*model.ToggleAlertsResponse, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}
	updated, err := s.repo.SetActiveForPatient(ctx, *actor.PatientID, active)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.ToggleAlertsResponse{Updated: updated}, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	alert, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("alert")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return alert, nil
}
