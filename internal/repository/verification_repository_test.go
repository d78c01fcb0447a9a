package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

func TestVerificationUpsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	mock.ExpectExec("INSERT INTO pending_verifications").WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now().UTC()
	err := repo.Upsert(context.Background(), &models.PendingVerification{
		Email:     "pending@example.com",
		Code:      "123456",
		IssuedAt:  now,
		ExpiresAt: now.Add(10 * time.Minute),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"email", "code", "issued_at", "expires_at", "attempts"}).
		AddRow("pending@example.com", "123456", now, now.Add(10*time.Minute), 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, code, issued_at, expires_at, attempts FROM pending_verifications WHERE email = $1 LIMIT 1")).
		WithArgs("pending@example.com").
		WillReturnRows(rows)

	pv, err := repo.FindByEmail(context.Background(), "pending@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", pv.Code)
	assert.Equal(t, 2, pv.Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	mock.ExpectQuery("SELECT .+ FROM pending_verifications").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestVerificationIncrementAttempts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	rows := sqlmock.NewRows([]string{"attempts"}).AddRow(3)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pending_verifications SET attempts = attempts + 1 WHERE email = $1 RETURNING attempts")).
		WithArgs("pending@example.com").
		WillReturnRows(rows)

	attempts, err := repo.IncrementAttempts(context.Background(), "pending@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_verifications WHERE email = $1")).
		WithArgs("pending@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "pending@example.com")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
