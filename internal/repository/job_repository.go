package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

// JobRepository provides database access to the job board store.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new instance of JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, guardian_id, title, subject, location, city, salary, status, hired_teacher_id, created_at, updated_at`

// Create inserts a new open job.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.JobOpen
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	const query = `INSERT INTO jobs (id, guardian_id, title, subject, location, city, salary, status, hired_teacher_id, created_at, updated_at)
		VALUES (:id, :guardian_id, :title, :subject, :location, :city, :salary, :status, :hired_teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetByID returns a job by identifier.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1 LIMIT 1`, jobColumns)
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	return &job, nil
}

// ListOpen returns open jobs matching the filter with a total count.
func (r *JobRepository) ListOpen(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	baseQuery := `FROM jobs WHERE status = 'OPEN'`
	var conditions []string
	var args []interface{}

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = $%d", len(args)+1))
		args = append(args, strings.ToLower(filter.City))
	}
	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(subject) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Subject)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", jobColumns, baseQuery, pageSize, offset)

	var jobsList []models.Job
	if err := r.db.SelectContext(ctx, &jobsList, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list open jobs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count open jobs: %w", err)
	}

	return jobsList, total, nil
}

// ListByGuardian returns every job posted by a guardian, newest first.
func (r *JobRepository) ListByGuardian(ctx context.Context, guardianID string) ([]models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE guardian_id = $1 ORDER BY created_at DESC`, jobColumns)
	var jobsList []models.Job
	if err := r.db.SelectContext(ctx, &jobsList, query, guardianID); err != nil {
		return nil, fmt.Errorf("list jobs by guardian: %w", err)
	}
	return jobsList, nil
}

// Cancel moves an open job to CANCELLED. Returns false when the job was
// not open anymore, so a concurrent hire always beats a cancel.
func (r *JobRepository) Cancel(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE jobs SET status = 'CANCELLED', updated_at = $2 WHERE id = $1 AND status = 'OPEN'`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("cancel job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel job rows affected: %w", err)
	}
	return affected == 1, nil
}

// ConfirmHiring fills a job and settles its applications in one
// transaction. The status update is a compare-and-swap on OPEN: with
// concurrent confirmations exactly one caller sees won=true, the rest
// observe no row updated and nothing else in the transaction fires.
func (r *JobRepository) ConfirmHiring(ctx context.Context, jobID, teacherID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin hire tx: %w", err)
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE jobs SET status = 'FILLED', hired_teacher_id = $2, updated_at = $3 WHERE id = $1 AND status = 'OPEN'`,
		jobID, teacherID, now)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("fill job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("fill job rows affected: %w", err)
	}
	if affected == 0 {
		tx.Rollback() //nolint:errcheck
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = 'ACCEPTED' WHERE job_id = $1 AND teacher_id = $2`,
		jobID, teacherID); err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("accept application: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = 'REJECTED' WHERE job_id = $1 AND teacher_id <> $2 AND status = 'PENDING'`,
		jobID, teacherID); err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("reject other applications: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit hire tx: %w", err)
	}
	return true, nil
}
