package models

import "time"

// UserRole represents the marketplace roles.
type UserRole string

const (
	RoleGuardian UserRole = "GUARDIAN"
	RoleTeacher  UserRole = "TEACHER"
	RoleAdmin    UserRole = "ADMIN"
)

// RegistrationRoles lists the roles a user may self-select at signup.
// Admin accounts are provisioned out of band.
var RegistrationRoles = []UserRole{RoleGuardian, RoleTeacher}

// User represents an account stored in the users table. Accounts are
// created unverified and only become usable once the registration OTP
// has been confirmed.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	Verified     bool      `db:"verified" json:"verified"`
	Phone        string    `db:"phone" json:"phone"`
	Bio          string    `db:"bio" json:"bio"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileComplete reports whether a teacher account carries the fields
// required before it may apply to jobs.
func (u *User) ProfileComplete() bool {
	return u.Verified && u.Phone != "" && u.Bio != ""
}

// UpdateProfileRequest mutates the caller's own profile fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,min=6"`
	Bio      string `json:"bio" validate:"omitempty,max=2000"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
