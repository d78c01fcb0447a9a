package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

// ApplicationRepository persists teacher applications to jobs.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new pending application. The (job_id, teacher_id)
// unique index is the authority on duplicates: a race between two
// concurrent submissions surfaces here as a unique violation, which
// callers detect with IsUniqueViolation.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now().UTC()
	}

	const query = `INSERT INTO applications (id, job_id, teacher_id, message, status, submitted_at)
		VALUES (:id, :job_id, :teacher_id, :message, :status, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// FindByJobAndTeacher returns the single application a teacher made to a job.
func (r *ApplicationRepository) FindByJobAndTeacher(ctx context.Context, jobID, teacherID string) (*models.Application, error) {
	const query = `SELECT id, job_id, teacher_id, message, status, submitted_at FROM applications WHERE job_id = $1 AND teacher_id = $2 LIMIT 1`
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, jobID, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

// ListByTeacher returns a teacher's applications, newest first.
func (r *ApplicationRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Application, error) {
	const query = `SELECT id, job_id, teacher_id, message, status, submitted_at FROM applications WHERE teacher_id = $1 ORDER BY submitted_at DESC`
	var apps []models.Application
	if err := r.db.SelectContext(ctx, &apps, query, teacherID); err != nil {
		return nil, fmt.Errorf("list applications by teacher: %w", err)
	}
	return apps, nil
}

// ListDetailsByJob returns every applicant for a job joined with their
// profile, for the owning guardian's review page.
func (r *ApplicationRepository) ListDetailsByJob(ctx context.Context, jobID string) ([]models.ApplicantDetail, error) {
	const query = `SELECT a.id AS application_id, a.teacher_id, u.full_name AS teacher_name, u.email AS teacher_email,
			u.bio AS teacher_bio, a.message, a.status, a.submitted_at
		FROM applications a
		JOIN users u ON u.id = a.teacher_id
		WHERE a.job_id = $1
		ORDER BY a.submitted_at ASC`
	var details []models.ApplicantDetail
	if err := r.db.SelectContext(ctx, &details, query, jobID); err != nil {
		return nil, fmt.Errorf("list applicants for job: %w", err)
	}
	return details, nil
}
