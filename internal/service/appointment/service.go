package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/email"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/internal/service/notification"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type Service struct {
	repo     repository.AppointmentRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	notifSvc *notification.Service
	emailSvc email.Service
}

func NewService(
	repo repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	notifSvc *notification.Service,
	emailSvc email.Service,
) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		patients: patients,
		notifSvc: notifSvc,
		emailSvc: emailSvc,
	}
}

// Create books a pending appointment. Only a patient may book; the
// addressed doctor gets a notification.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}

	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if req.RequestedAt.Before(time.Now()) {
		return nil, apperrors.BadRequest("appointment cannot be requested in the past", nil)
	}

	apt := &model.Appointment{
		PatientID:   *actor.PatientID,
		DoctorID:    doctor.ID,
		RequestedAt: req.RequestedAt,
		Status:      model.AppointmentStatusPending,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, apperrors.Internal(err)
	}

	patient, err := s.patients.Get(ctx, apt.PatientID)
	patientName := "A patient"
	if err == nil && patient.Account != nil {
		patientName = patient.Account.FullName()
	}

	msg := fmt.Sprintf("%s requested an appointment on %s", patientName, apt.RequestedAt.Format("2006-01-02 15:04"))
	if err := s.notifSvc.Notify(ctx, doctor.AccountID, msg, model.RelatedAppointment, &apt.ID); err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("doctor notification failed")
	}

	return apt, nil
}

// Respond applies the doctor's single accept/reject decision. The
// terminal-state check runs before any mutation: responding to a
// non-pending appointment fails with no side effect.
func (s *Service) Respond(ctx context.Context, actor model.Actor, id uuid.UUID, accept bool) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if !access.CanRespondToAppointment(actor, apt.DoctorID) {
		return nil, apperrors.Forbidden()
	}

	if apt.Status != model.AppointmentStatusPending {
		return nil, apperrors.Conflict("appointment has already been responded to")
	}

	newStatus := model.AppointmentStatusConfirmed
	if !accept {
		newStatus = model.AppointmentStatusRejected
	}

	if accept {
		// gaining the patient on the follow list is idempotent
		if err := s.doctors.FollowPatient(ctx, apt.DoctorID, apt.PatientID); err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, apperrors.Internal(err)
	}
	apt.Status = newStatus

	s.notifyPatient(ctx, apt, accept)

	return apt, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if !access.CanViewAppointment(actor, apt.PatientID, apt.DoctorID) {
		return nil, apperrors.Forbidden()
	}
	return apt, nil
}

// List scopes by role. Patients see every state; a doctor's listing
// leaves out rejected appointments unless a status filter asks for
// them.
func (s *Service) List(ctx context.Context, actor model.Actor, status model.AppointmentStatus) ([]*model.Appointment, error) {
	filters := &model.AppointmentFilters{Status: status}

	switch {
	case actor.IsPatient() && actor.PatientID != nil:
		filters.PatientID = *actor.PatientID
	case actor.IsDoctor() && actor.DoctorID != nil:
		filters.DoctorID = *actor.DoctorID
		if status == "" {
			filters.ExcludeRejected = true
		}
	default:
		return nil, apperrors.Forbidden()
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

func (s *Service) notifyPatient(ctx context.Context, apt *model.Appointment, accepted bool) {
	patient, err := s.patients.Get(ctx, apt.PatientID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", apt.PatientID.String()).Msg("patient lookup for notification failed")
		return
	}

	doctorName := "your doctor"
	doctor, err := s.doctors.Get(ctx, apt.DoctorID)
	if err == nil && doctor.Account != nil {
		doctorName = doctor.Account.FullName()
	}

	outcome := "confirmed"
	if !accepted {
		outcome = "rejected"
	}
	msg := fmt.Sprintf("Dr. %s %s your appointment for %s", doctorName, outcome, apt.RequestedAt.Format("2006-01-02 15:04"))

	if err := s.notifSvc.Notify(ctx, patient.AccountID, msg, model.RelatedAppointment, &apt.ID); err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("patient notification failed")
	}

	if patient.Account != nil {
		if err := s.emailSvc.SendAppointmentOutcome(ctx, patient.Account.Email, doctorName, accepted); err != nil {
			log.Warn().Err(err).Str("email", patient.Account.Email).Msg("appointment outcome email failed")
		}
	}
}
