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

type reviewRepo interface {
	Create(ctx context.Context, review *models.Review) error
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Review, error)
}

type reviewJobRepo interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

// ReviewService records guardian reviews of hired teachers.
type ReviewService struct {
	reviews   reviewRepo
	jobs      reviewJobRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(reviews reviewRepo, jobsRepo reviewJobRepo, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReviewService{reviews: reviews, jobs: jobsRepo, validator: validate, logger: logger}
}

// Submit files a review from the owning guardian against the teacher
// hired for the job. Jobs someone else owns answer not-found, and only
// a filled job with a hired teacher can be reviewed. Uniqueness per job
// is enforced by the database inside the insert, so two concurrent
// submissions can never both succeed.
func (s *ReviewService) Submit(ctx context.Context, guardianID, jobID string, req models.SubmitReviewRequest) (*models.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if job.GuardianID != guardianID {
		return nil, appErrors.ErrJobNotFound
	}
	if job.Status != models.JobFilled || job.HiredTeacherID == nil {
		return nil, appErrors.ErrJobNotFilled
	}

	review := &models.Review{
		JobID:      jobID,
		GuardianID: guardianID,
		TeacherID:  *job.HiredTeacherID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrDuplicateReview
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store review")
	}

	s.logger.Info("review submitted", zap.String("job_id", jobID), zap.String("teacher_id", review.TeacherID), zap.Int("rating", review.Rating))
	return review, nil
}

// ForTeacher lists the reviews left for a teacher.
func (s *ReviewService) ForTeacher(ctx context.Context, teacherID string) ([]models.Review, error) {
	reviews, err := s.reviews.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	return reviews, nil
}
