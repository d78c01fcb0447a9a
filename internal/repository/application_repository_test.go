package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

func TestApplicationCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec("INSERT INTO applications").WillReturnResult(sqlmock.NewResult(1, 1))

	app := &models.Application{JobID: "j1", TeacherID: "t1", Message: "I teach this subject"}
	err := repo.Create(context.Background(), app)
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec("INSERT INTO applications").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Application{JobID: "j1", TeacherID: "t1", Message: "again"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestApplicationFindByJobAndTeacherNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectQuery("SELECT .+ FROM applications WHERE job_id").
		WithArgs("j1", "t1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByJobAndTeacher(context.Background(), "j1", "t1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestApplicationListDetailsByJob(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"application_id", "teacher_id", "teacher_name", "teacher_email", "teacher_bio", "message", "status", "submitted_at"}).
		AddRow("a1", "t1", "Teacher One", "t1@example.com", "Physics tutor", "Pick me", string(models.ApplicationPending), now).
		AddRow("a2", "t2", "Teacher Two", "t2@example.com", "Math tutor", "Me too", string(models.ApplicationPending), now)
	mock.ExpectQuery("SELECT a.id AS application_id").
		WithArgs("j1").
		WillReturnRows(rows)

	details, err := repo.ListDetailsByJob(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Teacher One", details[0].TeacherName)
	assert.Equal(t, "t2", details[1].TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
