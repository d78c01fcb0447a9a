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

func jobRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "guardian_id", "title", "subject", "location", "city", "salary", "status", "hired_teacher_id", "created_at", "updated_at"}).
		AddRow("j1", "g1", "Math tutor for class 8", "Mathematics", "Dhanmondi", "Dhaka", 8000.0, string(models.JobOpen), nil, now, now)
}

func TestJobGetByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE id").
		WithArgs("j1").
		WillReturnRows(jobRows(time.Now()))

	job, err := repo.GetByID(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, "g1", job.GuardianID)
	assert.Equal(t, models.JobOpen, job.Status)
	assert.Nil(t, job.HiredTeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestJobListOpenWithFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, guardian_id, title, subject, location, city, salary, status, hired_teacher_id, created_at, updated_at FROM jobs WHERE status = 'OPEN' AND LOWER(city) = $1 AND LOWER(subject) LIKE $2 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("dhaka", "%math%").
		WillReturnRows(jobRows(time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM jobs WHERE status = 'OPEN' AND LOWER(city) = $1 AND LOWER(subject) LIKE $2")).
		WithArgs("dhaka", "%math%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	jobsList, total, err := repo.ListOpen(context.Background(), models.JobFilter{City: "Dhaka", Subject: "Math"})
	require.NoError(t, err)
	assert.Len(t, jobsList, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobCancelNotOpen(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec("UPDATE jobs SET status = 'CANCELLED'").
		WillReturnResult(sqlmock.NewResult(0, 0))

	cancelled, err := repo.Cancel(context.Background(), "j1")
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestJobConfirmHiringWins(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE jobs SET status = 'FILLED'").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE applications SET status = 'ACCEPTED'").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE applications SET status = 'REJECTED'").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	won, err := repo.ConfirmHiring(context.Background(), "j1", "t1")
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobConfirmHiringLosesRace(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	// Compare-and-swap misses: job already FILLED or CANCELLED. The
	// transaction rolls back without touching applications.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE jobs SET status = 'FILLED'").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	won, err := repo.ConfirmHiring(context.Background(), "j1", "t1")
	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}
