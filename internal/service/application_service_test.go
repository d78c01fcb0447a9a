package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type fakeApplicationRepo struct {
	createErr error
	created   []*models.Application
	list      []models.Application
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, app)
	return nil
}

func (f *fakeApplicationRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.Application, error) {
	return f.list, nil
}

type fakeApplicationJobRepo struct {
	job *models.Job
}

func (f *fakeApplicationJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	if f.job == nil || f.job.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.job, nil
}

type fakeApplicationUserRepo struct {
	user *models.User
}

func (f *fakeApplicationUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func completeTeacher() *models.User {
	return &models.User{ID: "t1", Email: "t1@example.com", FullName: "Teacher", Role: models.RoleTeacher, Verified: true, Phone: "01700000000", Bio: "Physics tutor"}
}

func newApplicationFixture() (*fakeApplicationRepo, *fakeApplicationJobRepo, *fakeApplicationUserRepo, *ApplicationService) {
	apps := &fakeApplicationRepo{}
	jobsRepo := &fakeApplicationJobRepo{job: &models.Job{ID: "j1", GuardianID: "g1", Status: models.JobOpen}}
	users := &fakeApplicationUserRepo{user: completeTeacher()}
	svc := NewApplicationService(apps, jobsRepo, users, nil, nil)
	return apps, jobsRepo, users, svc
}

func TestApplicationSubmitSuccess(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()

	app, err := svc.Submit(context.Background(), "t1", "j1", models.SubmitApplicationRequest{Message: "I would like to apply"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, "j1", app.JobID)
	assert.Len(t, apps.created, 1)
}

func TestApplicationSubmitJobNotFound(t *testing.T) {
	_, _, _, svc := newApplicationFixture()

	_, err := svc.Submit(context.Background(), "t1", "missing", models.SubmitApplicationRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrJobNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationSubmitJobNotOpen(t *testing.T) {
	_, jobsRepo, _, svc := newApplicationFixture()
	jobsRepo.job.Status = models.JobFilled

	_, err := svc.Submit(context.Background(), "t1", "j1", models.SubmitApplicationRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrJobNotOpen.Code, appErrors.FromError(err).Code)
}

func TestApplicationSubmitIncompleteProfile(t *testing.T) {
	apps, _, users, svc := newApplicationFixture()
	users.user.Bio = ""

	_, err := svc.Submit(context.Background(), "t1", "j1", models.SubmitApplicationRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrProfileIncomplete.Code, appErrors.FromError(err).Code)
	assert.Empty(t, apps.created)
}

func TestApplicationSubmitDuplicate(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()
	apps.createErr = &pq.Error{Code: "23505"}

	_, err := svc.Submit(context.Background(), "t1", "j1", models.SubmitApplicationRequest{Message: "again"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateApplication.Code, appErrors.FromError(err).Code)
}

func TestApplicationSubmitEmptyMessage(t *testing.T) {
	_, _, _, svc := newApplicationFixture()

	_, err := svc.Submit(context.Background(), "t1", "j1", models.SubmitApplicationRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestApplicationMyApplications(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()
	apps.list = []models.Application{{ID: "a1", JobID: "j1", TeacherID: "t1"}}

	list, err := svc.MyApplications(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
