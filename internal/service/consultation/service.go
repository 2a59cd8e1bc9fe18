package consultation

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/internal/service/notification"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type Service struct {
	repo     repository.ConsultationRepository
	patients repository.PatientRepository
	notifSvc *notification.Service
}

func NewService(
	repo repository.ConsultationRepository,
	patients repository.PatientRepository,
	notifSvc *notification.Service,
) *Service {
	return &Service{repo: repo, patients: patients, notifSvc: notifSvc}
}

// Create records a consultation outcome. Only doctors author
// consultations; the patient gets a notification.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	if !access.CanAuthorDoctorRecord(actor) {
		return nil, apperrors.Forbidden()
	}

	patient, err := s.patients.Get(ctx, req.PatientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	accountID := actor.AccountID
	consultation := &model.Consultation{
		PatientID:   patient.ID,
		DoctorID:    &accountID,
		ScheduledAt: req.ScheduledAt,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, consultation); err != nil {
		return nil, apperrors.Internal(err)
	}

	msg := fmt.Sprintf("A consultation record from %s was added to your file", consultation.ScheduledAt.Format("2006-01-02"))
	if err := s.notifSvc.Notify(ctx, patient.AccountID, msg, model.RelatedConsultation, &consultation.ID); err != nil {
		log.Warn().Err(err).Str("consultation_id", consultation.ID.String()).Msg("consultation notification failed")
	}

	return consultation, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, consultation.PatientID) {
		return nil, apperrors.Forbidden()
	}
	return consultation, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateConsultationRequest) (*model.Consultation, error) {
	consultation, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModifyDoctorRecord(actor, consultation.DoctorID) {
		return nil, apperrors.Forbidden()
	}

	if req.ScheduledAt != nil {
		consultation.ScheduledAt = *req.ScheduledAt
	}
	if req.Diagnosis != nil {
		consultation.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		consultation.Treatment = *req.Treatment
	}
	if req.Notes != nil {
		consultation.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, apperrors.Internal(err)
	}
	return consultation, nil
}

// Delete is allowed for the authoring doctor and for the patient the
// consultation belongs to.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	consultation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteConsultation(actor, consultation.PatientID, consultation.DoctorID) {
		return apperrors.Forbidden()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]*model.Consultation, error) {
	if !access.CanReadPatientRecord(actor, patientID) {
		return nil, apperrors.Forbidden()
	}
	consultations, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return consultations, nil
}

func (s *Service) ListMine(ctx context.Context, actor model.Actor) ([]*model.Consultation, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden()
	}
	consultations, err := s.repo.ListByDoctor(ctx, actor.AccountID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return consultations, nil
}

// Report renders the printable consultation summary to w as HTML.
func (s *Service) Report(ctx context.Context, actor model.Actor, id uuid.UUID, w io.Writer) error {
	consultation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanViewConsultationReport(actor, consultation.PatientID, consultation.DoctorID) {
		return apperrors.Forbidden()
	}
	if err := renderReport(w, consultation); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("consultation")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return consultation, nil
}
