package attachment

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

const ownerDir = "attachments"

type Service struct {
	repo  repository.AttachmentRepository
	store storage.Store
}

func NewService(repo repository.AttachmentRepository, store storage.Store) *Service {
	return &Service{repo: repo, store: store}
}

// Upload stores the file first, then the row. A failed insert rolls the
// file back out of the store.
func (s *Service) Upload(ctx context.Context, actor model.Actor, filename, description string, src io.Reader) (*model.Attachment, error) {
	if !actor.IsPatient() || actor.PatientID == nil {
		return nil, apperrors.Forbidden()
	}

	relPath, err := s.store.Save(ownerDir, *actor.PatientID, filename, src)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	attachment := &model.Attachment{
		PatientID:   *actor.PatientID,
		FilePath:    relPath,
		FileName:    filename,
		Description: description,
	}
	if err := s.repo.Create(ctx, attachment); err != nil {
		if rmErr := s.store.Remove(relPath); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", relPath).Msg("orphaned upload cleanup failed")
		}
		return nil, apperrors.Internal(err)
	}
	return attachment, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Attachment, error) {
	attachment, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadPatientRecord(actor, attachment.PatientID) {
		return nil, apperrors.Forbidden()
	}
	return attachment, nil
}

// Open returns the file contents for download, gated the same way as
// the metadata.
func (s *Service) Open(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Attachment, io.ReadCloser, error) {
	attachment, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(attachment.FilePath)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	return attachment, rc, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateAttachmentRequest) (*model.Attachment, error) {
	attachment, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWritePatientRecord(actor, attachment.PatientID) {
		return nil, apperrors.Forbidden()
	}

	attachment.Description = *req.Description
	if err := s.repo.Update(ctx, attachment); err != nil {
		return nil, apperrors.Internal(err)
	}
	return attachment, nil
}

// Delete removes the row first, then the backing file. File removal is
// best-effort: once the row is gone the attachment is deleted, and a
// stray file on disk is only log noise.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	attachment, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWritePatientRecord(actor, attachment.PatientID) {
		return apperrors.Forbidden()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	if err := s.store.Remove(attachment.FilePath); err != nil {
		log.Warn().Err(err).Str("path", attachment.FilePath).Msg("attachment file removal failed")
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]*model.Attachment, error) {
	if !access.CanReadPatientRecord(actor, patientID) {
		return nil, apperrors.Forbidden()
	}
	attachments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return attachments, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	attachment, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("attachment")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return attachment, nil
}
