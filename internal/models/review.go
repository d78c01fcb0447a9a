package models

import "time"

// Review is a guardian's rating of the teacher hired for one of their
// jobs. A job carries at most one review.
type Review struct {
	ID         string    `db:"id" json:"id"`
	JobID      string    `db:"job_id" json:"job_id"`
	GuardianID string    `db:"guardian_id" json:"guardian_id"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SubmitReviewRequest is the body of a review call.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}
