package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rahat-sukari/api/internal/email"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
	"github.com/rahat-sukari/api/pkg/security"
)

type Service struct {
	accounts repository.AccountRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	hasher   security.PasswordHasher
	emailSvc email.Service
}

func NewService(
	accounts repository.AccountRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	hasher security.PasswordHasher,
	emailSvc email.Service,
) *Service {
	return &Service{
		accounts: accounts,
		patients: patients,
		doctors:  doctors,
		hasher:   hasher,
		emailSvc: emailSvc,
	}
}

// Register creates the account and its matching profile in one step.
// Selecting the doctor role flags the account at creation time, which
// is what picks the profile kind.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordLength) {
			return nil, apperrors.BadRequest("password too short", err)
		}
		return nil, apperrors.Internal(err)
	}

	first, last := model.SplitName(strings.TrimSpace(req.Name))

	account := &model.Account{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		IsDoctor:     req.Role == model.RoleDoctor,
	}

	if err := s.accounts.CreateWithProfile(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("email or username already taken")
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.emailSvc.SendWelcome(ctx, account.Email, account.FullName()); err != nil {
		log.Warn().Err(err).Str("email", account.Email).Msg("welcome email failed")
	}

	return account, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.accounts.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("account")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return account, nil
}

// Delete removes the account; the profile and every clinical record
// hanging off it cascade away.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if actor.AccountID != id {
		return apperrors.Forbidden()
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("account")
		}
		return apperrors.Internal(err)
	}
	return nil
}
