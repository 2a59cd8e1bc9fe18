package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
)

// CreateWithProfile inserts the account and the single matching profile
// row inside one transaction. Which profile gets created follows the
// role flag at save time.
func (r *accountRepository) CreateWithProfile(ctx context.Context, account *model.Account) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	query := `
		INSERT INTO accounts (
			id, email, username, password_hash,
			first_name, last_name, is_doctor,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.IsDoctor,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	if account.IsDoctor {
		profileQuery := `
			INSERT INTO doctor_profiles (id, account_id, is_available, created_at, updated_at)
			VALUES ($1, $2, TRUE, $3, $3)
		`
		_, err = tx.ExecContext(ctx, profileQuery, uuid.New(), account.ID, account.CreatedAt)
	} else {
		profileQuery := `
			INSERT INTO patient_profiles (id, account_id, diabetes_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`
		_, err = tx.ExecContext(ctx, profileQuery, uuid.New(), account.ID, model.DiabetesType2, account.CreatedAt)
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, email, username, password_hash,
			   first_name, last_name, is_doctor,
			   created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByLogin resolves either the username or the email address.
func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	query := `
		SELECT id, email, username, password_hash,
			   first_name, last_name, is_doctor,
			   created_at, updated_at
		FROM accounts
		WHERE username = $1 OR email = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by login: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET email = $1, username = $2, first_name = $3, last_name = $4, updated_at = $5
		WHERE id = $6
	`
	account.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		account.Email,
		account.Username,
		account.FirstName,
		account.LastName,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete cascades to the profile and, through it, every clinical record.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
