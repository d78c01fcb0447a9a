package models

import "time"

// PendingVerification tracks the live OTP for an unverified email.
// The email is the primary key: re-registering upserts the row, so the
// previous code dies the moment a new one is issued.
type PendingVerification struct {
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	IssuedAt  time.Time `db:"issued_at" json:"issued_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Attempts  int       `db:"attempts" json:"attempts"`
}

// Expired reports whether the code is past its TTL at the given instant.
func (p *PendingVerification) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
