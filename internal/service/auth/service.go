package auth

import (
	"context"
	"errors"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	"github.com/rahat-sukari/api/pkg/auth"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
	"github.com/rahat-sukari/api/pkg/security"
)

type Service struct {
	accounts repository.AccountRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	tokens   auth.TokenService
	hasher   security.PasswordHasher
}

func NewService(
	accounts repository.AccountRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	tokens auth.TokenService,
	hasher security.PasswordHasher,
) *Service {
	return &Service{
		accounts: accounts,
		patients: patients,
		doctors:  doctors,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Login exchanges credentials for a bearer token plus the caller's role
// and profile identifiers. The login field accepts username or email.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	account, err := s.accounts.GetByLogin(ctx, req.Login)
	if err != nil {
		// same response for unknown login and bad password
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Generate(account.ID, string(account.Role()), account.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := &model.TokenResponse{
		Token:     token,
		AccountID: account.ID,
		Role:      account.Role(),
		Email:     account.Email,
		Username:  account.Username,
	}

	if account.IsDoctor {
		doctor, err := s.doctors.GetByAccount(ctx, account.ID)
		if err == nil {
			resp.DoctorID = &doctor.ID
		}
	} else {
		patient, err := s.patients.GetByAccount(ctx, account.ID)
		if err == nil {
			resp.PatientID = &patient.ID
		}
	}

	return resp, nil
}

// Resolve turns validated token claims into the Actor the access
// predicates consume.
func (s *Service) Resolve(ctx context.Context, tokenString string) (model.Actor, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return model.Actor{}, apperrors.Unauthorized("invalid token")
	}

	account, err := s.accounts.Get(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Actor{}, apperrors.Unauthorized("account no longer exists")
		}
		return model.Actor{}, apperrors.Internal(err)
	}

	actor := model.Actor{
		AccountID: account.ID,
		Role:      account.Role(),
	}

	if account.IsDoctor {
		doctor, err := s.doctors.GetByAccount(ctx, account.ID)
		if err == nil {
			actor.DoctorID = &doctor.ID
		}
	} else {
		patient, err := s.patients.GetByAccount(ctx, account.ID)
		if err == nil {
			actor.PatientID = &patient.ID
		}
	}

	return actor, nil
}
