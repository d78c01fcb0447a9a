package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type jobRepo interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListOpen(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error)
	ListByGuardian(ctx context.Context, guardianID string) ([]models.Job, error)
	Cancel(ctx context.Context, id string) (bool, error)
}

type jobListCache interface {
	Get(ctx context.Context, filter models.JobFilter) ([]models.Job, int, bool)
	Set(ctx context.Context, filter models.JobFilter, jobsList []models.Job, total int)
}

// JobService manages tuition postings short of hiring, which belongs to
// HiringService.
type JobService struct {
	repo      jobRepo
	cache     jobListCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobService constructs a JobService instance.
func NewJobService(repo jobRepo, cache jobListCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &JobService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Create posts a new open job owned by the calling guardian.
func (s *JobService) Create(ctx context.Context, guardianID string, req models.CreateJobRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	job := &models.Job{
		GuardianID: guardianID,
		Title:      req.Title,
		Subject:    req.Subject,
		Location:   req.Location,
		City:       req.City,
		Salary:     req.Salary,
		Status:     models.JobOpen,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	s.logger.Info("job posted", zap.String("job_id", job.ID), zap.String("guardian_id", guardianID))
	return job, nil
}

// BrowseOpen returns the open-job board page for teachers.
func (s *JobService) BrowseOpen(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	if s.cache != nil {
		if jobsList, total, ok := s.cache.Get(ctx, filter); ok {
			s.metrics.RecordCacheLookup(true)
			return jobsList, total, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	jobsList, total, err := s.repo.ListOpen(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}

	if s.cache != nil {
		s.cache.Set(ctx, filter, jobsList, total)
	}
	return jobsList, total, nil
}

// MyJobs lists every job the guardian has posted.
func (s *JobService) MyJobs(ctx context.Context, guardianID string) ([]models.Job, error) {
	jobsList, err := s.repo.ListByGuardian(ctx, guardianID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobsList, nil
}

// Cancel withdraws an open job. Ownership failures are reported as
// not-found, and a job that has been filled (or already cancelled)
// refuses with a state conflict.
func (s *JobService) Cancel(ctx context.Context, guardianID, jobID string) error {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrJobNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if job.GuardianID != guardianID {
		return appErrors.ErrJobNotFound
	}

	cancelled, err := s.repo.Cancel(ctx, jobID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel job")
	}
	if !cancelled {
		return appErrors.ErrJobNotOpen
	}

	s.logger.Info("job cancelled", zap.String("job_id", jobID), zap.String("guardian_id", guardianID))
	return nil
}
