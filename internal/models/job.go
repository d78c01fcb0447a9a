package models

import "time"

// JobStatus is the lifecycle state of a tuition posting.
type JobStatus string

const (
	JobOpen      JobStatus = "OPEN"
	JobFilled    JobStatus = "FILLED"
	JobCancelled JobStatus = "CANCELLED"
)

// Job is a tuition posting owned by a guardian. HiredTeacherID is set
// exactly when Status is FILLED.
type Job struct {
	ID             string    `db:"id" json:"id"`
	GuardianID     string    `db:"guardian_id" json:"guardian_id"`
	Title          string    `db:"title" json:"title"`
	Subject        string    `db:"subject" json:"subject"`
	Location       string    `db:"location" json:"location"`
	City           string    `db:"city" json:"city"`
	Salary         float64   `db:"salary" json:"salary"`
	Status         JobStatus `db:"status" json:"status"`
	HiredTeacherID *string   `db:"hired_teacher_id" json:"hired_teacher_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// CreateJobRequest posts a new tuition job.
type CreateJobRequest struct {
	Title    string  `json:"title" validate:"required"`
	Subject  string  `json:"subject" validate:"required"`
	Location string  `json:"location" validate:"required"`
	City     string  `json:"city" validate:"required"`
	Salary   float64 `json:"salary" validate:"required,gt=0"`
}

// JobFilter narrows the open-jobs board.
type JobFilter struct {
	City     string
	Subject  string
	Page     int
	PageSize int
}
