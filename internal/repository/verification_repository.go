package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

// VerificationRepository persists pending OTP verifications. The email
// column is the primary key, so there is at most one live code per email.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository constructs the repository.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Upsert installs a fresh code for an email, replacing and thereby
// invalidating any previous one. Attempts reset to zero.
func (r *VerificationRepository) Upsert(ctx context.Context, pv *models.PendingVerification) error {
	const query = `INSERT INTO pending_verifications (email, code, issued_at, expires_at, attempts)
		VALUES (:email, :code, :issued_at, :expires_at, :attempts)
		ON CONFLICT (email)
		DO UPDATE SET code = EXCLUDED.code, issued_at = EXCLUDED.issued_at, expires_at = EXCLUDED.expires_at, attempts = EXCLUDED.attempts`
	if _, err := r.db.NamedExecContext(ctx, query, pv); err != nil {
		return fmt.Errorf("upsert pending verification: %w", err)
	}
	return nil
}

// FindByEmail returns the live pending verification for an email.
func (r *VerificationRepository) FindByEmail(ctx context.Context, email string) (*models.PendingVerification, error) {
	const query = `SELECT email, code, issued_at, expires_at, attempts FROM pending_verifications WHERE email = $1 LIMIT 1`
	var pv models.PendingVerification
	if err := r.db.GetContext(ctx, &pv, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find pending verification: %w", err)
	}
	return &pv, nil
}

// IncrementAttempts consumes one guess and returns the updated count.
func (r *VerificationRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	const query = `UPDATE pending_verifications SET attempts = attempts + 1 WHERE email = $1 RETURNING attempts`
	var attempts int
	if err := r.db.GetContext(ctx, &attempts, query, email); err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	return attempts, nil
}

// Delete removes the pending verification once consumed.
func (r *VerificationRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM pending_verifications WHERE email = $1`
	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("delete pending verification: %w", err)
	}
	return nil
}
