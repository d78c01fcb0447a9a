package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Generic errors shared across modules.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// Registration and OTP verification errors.
var (
	ErrDuplicateEmail = New("DUPLICATE_EMAIL", http.StatusConflict, "an account with this email already exists")
	ErrNoPending      = New("NO_PENDING_VERIFICATION", http.StatusNotFound, "no verification in progress for this email")
	ErrOTPExpired     = New("OTP_EXPIRED", http.StatusGone, "verification code has expired, request a new one")
	ErrTooManyOTP     = New("TOO_MANY_ATTEMPTS", http.StatusTooManyRequests, "too many incorrect attempts, request a new code")
	// The message stays generic on purpose: it must not reveal whether the
	// code exists, is stale, or merely mismatched.
	ErrInvalidOTP        = New("INVALID_CODE", http.StatusBadRequest, "invalid or expired verification code")
	ErrResendThrottled   = New("RESEND_THROTTLED", http.StatusTooManyRequests, "a code was sent recently, wait before requesting another")
	ErrAccountUnverified = New("ACCOUNT_UNVERIFIED", http.StatusForbidden, "email address has not been verified")
)

// Job board and hiring errors.
var (
	ErrJobNotFound          = New("JOB_NOT_FOUND", http.StatusNotFound, "job not found")
	ErrJobNotOpen           = New("JOB_NOT_OPEN", http.StatusConflict, "job is no longer open")
	ErrDuplicateApplication = New("DUPLICATE_APPLICATION", http.StatusConflict, "you have already applied to this job")
	ErrApplicantNotFound    = New("APPLICANT_NOT_FOUND", http.StatusNotFound, "no application from this teacher for this job")
	ErrProfileIncomplete    = New("PROFILE_INCOMPLETE", http.StatusForbidden, "complete your profile before applying")
	ErrJobNotFilled         = New("JOB_NOT_FILLED", http.StatusConflict, "job has no hired teacher to review")
	ErrDuplicateReview      = New("DUPLICATE_REVIEW", http.StatusConflict, "this job has already been reviewed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
