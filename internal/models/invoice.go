package models

import "time"

// InvoiceStatus is the payment state of a commission invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "UNPAID"
	InvoicePaid   InvoiceStatus = "PAID"
)

// CommissionInvoice is raised against the hired teacher when a job is
// filled. Amount is the job salary times the configured commission rate.
type CommissionInvoice struct {
	ID        string        `db:"id" json:"id"`
	JobID     string        `db:"job_id" json:"job_id"`
	TeacherID string        `db:"teacher_id" json:"teacher_id"`
	Amount    float64       `db:"amount" json:"amount"`
	Status    InvoiceStatus `db:"status" json:"status"`
	IssuedAt  time.Time     `db:"issued_at" json:"issued_at"`
	PaidAt    *time.Time    `db:"paid_at" json:"paid_at,omitempty"`
}
