package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

// ReviewRepository persists guardian reviews of hired teachers.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review. The job_id unique index is the authority
// on duplicates: a second review of the same job surfaces here as a
// unique violation, which callers detect with IsUniqueViolation.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO reviews (id, job_id, guardian_id, teacher_id, rating, comment, created_at)
		VALUES (:id, :job_id, :guardian_id, :teacher_id, :rating, :comment, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ListByTeacher returns the reviews left for a teacher, newest first.
func (r *ReviewRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Review, error) {
	const query = `SELECT id, job_id, guardian_id, teacher_id, rating, comment, created_at
		FROM reviews WHERE teacher_id = $1 ORDER BY created_at DESC`
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, query, teacherID); err != nil {
		return nil, fmt.Errorf("list reviews by teacher: %w", err)
	}
	return reviews, nil
}
