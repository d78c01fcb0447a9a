package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/internal/repository"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type applicationRepo interface {
	Create(ctx context.Context, app *models.Application) error
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Application, error)
}

type applicationJobRepo interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

type applicationUserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ApplicationService records teacher applications against open jobs.
type ApplicationService struct {
	apps      applicationRepo
	jobs      applicationJobRepo
	users     applicationUserRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationService constructs an ApplicationService instance.
func NewApplicationService(apps applicationRepo, jobsRepo applicationJobRepo, users applicationUserRepo, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ApplicationService{apps: apps, jobs: jobsRepo, users: users, validator: validate, logger: logger}
}

// Submit files an application from a teacher to a job. The uniqueness of
// (job, teacher) is enforced by the database inside the insert, so two
// concurrent submissions can never both succeed: the loser's insert hits
// the unique index and is reported as a duplicate.
func (s *ApplicationService) Submit(ctx context.Context, teacherID, jobID string, req models.SubmitApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if job.Status != models.JobOpen {
		return nil, appErrors.ErrJobNotOpen
	}

	teacher, err := s.users.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if !teacher.ProfileComplete() {
		return nil, appErrors.ErrProfileIncomplete
	}

	app := &models.Application{
		JobID:     jobID,
		TeacherID: teacherID,
		Message:   req.Message,
		Status:    models.ApplicationPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrDuplicateApplication
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store application")
	}

	s.logger.Info("application submitted", zap.String("job_id", jobID), zap.String("teacher_id", teacherID))
	return app, nil
}

// MyApplications lists the caller's applications.
func (s *ApplicationService) MyApplications(ctx context.Context, teacherID string) ([]models.Application, error) {
	apps, err := s.apps.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return apps, nil
}
