package models

import "time"

// ApplicationStatus is the lifecycle state of a teacher's application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application is a teacher's request to be hired for a job. The pair
// (job_id, teacher_id) is unique: a teacher applies to a job at most once.
type Application struct {
	ID          string            `db:"id" json:"id"`
	JobID       string            `db:"job_id" json:"job_id"`
	TeacherID   string            `db:"teacher_id" json:"teacher_id"`
	Message     string            `db:"message" json:"message"`
	Status      ApplicationStatus `db:"status" json:"status"`
	SubmittedAt time.Time         `db:"submitted_at" json:"submitted_at"`
}

// ApplicantDetail joins an application with the applying teacher's
// profile for the owning guardian's review.
type ApplicantDetail struct {
	ApplicationID string            `db:"application_id" json:"application_id"`
	TeacherID     string            `db:"teacher_id" json:"teacher_id"`
	TeacherName   string            `db:"teacher_name" json:"teacher_name"`
	TeacherEmail  string            `db:"teacher_email" json:"teacher_email"`
	TeacherBio    string            `db:"teacher_bio" json:"teacher_bio"`
	Message       string            `db:"message" json:"message"`
	Status        ApplicationStatus `db:"status" json:"status"`
	SubmittedAt   time.Time         `db:"submitted_at" json:"submitted_at"`
}

// SubmitApplicationRequest is the body of an apply call.
type SubmitApplicationRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ConfirmHiringRequest selects the applicant a guardian wants to hire.
type ConfirmHiringRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
}
