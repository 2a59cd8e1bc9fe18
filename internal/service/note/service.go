package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/internal/service/notification"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
)

type Service struct {
	repo     repository.DoctorNoteRepository
	patients repository.PatientRepository
	accounts repository.AccountRepository
	notifSvc *notification.Service
}

func NewService(
	repo repository.DoctorNoteRepository,
	patients repository.PatientRepository,
	accounts repository.AccountRepository,
	notifSvc *notification.Service,
) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		accounts: accounts,
		notifSvc: notifSvc,
	}
}

// Create records a clinical note against a patient and tells the
// patient about it. Only doctors author notes.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateDoctorNoteRequest) (*model.DoctorNote, error) {
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
	note := &model.DoctorNote{
		PatientID: patient.ID,
		DoctorID:  &accountID,
		NoteText:  req.NoteText,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.notifyPatient(ctx, patient, note)

	return note, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.DoctorNote, error) {
	note, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, note.PatientID) {
		return nil, apperrors.Forbidden()
	}
	return note, nil
}

// Update is restricted to the authoring doctor. Orphaned notes, whose
// author account is gone, stay readable but frozen.
func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateDoctorNoteRequest) (*model.DoctorNote, error) {
	note, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModifyDoctorRecord(actor, note.DoctorID) {
		return nil, apperrors.Forbidden()
	}

	note.NoteText = *req.NoteText
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, apperrors.Internal(err)
	}
	return note, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	note, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanModifyDoctorRecord(actor, note.DoctorID) {
		return apperrors.Forbidden()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]*model.DoctorNote, error) {
	if !access.CanReadPatientRecord(actor, patientID) {
		return nil, apperrors.Forbidden()
	}
	notes, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return notes, nil
}

// ListMine returns the notes the calling doctor authored, across all
// of their patients.
func (s *Service) ListMine(ctx context.Context, actor model.Actor) ([]*model.DoctorNote, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden()
	}
	notes, err := s.repo.ListByDoctor(ctx, actor.AccountID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return notes, nil
}

func (s *Service) notifyPatient(ctx context.Context, patient *model.PatientProfile, note *model.DoctorNote) {
	doctorName := "your doctor"
	if author, err := s.accounts.Get(ctx, *note.DoctorID); err == nil {
		doctorName = author.FullName()
	}

	msg := fmt.Sprintf("Dr. %s added a note to your record", doctorName)
	if err := s.notifSvc.Notify(ctx, patient.AccountID, msg, model.RelatedNote, &note.ID); err != nil {
		log.Warn().Err(err).Str("note_id", note.ID.String()).Msg("note notification failed")
	}
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.DoctorNote, error) {
	note, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor note")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return note, nil
}
