package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/binary"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

const otpLength = 6

type verificationUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateUnverified(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id string, ts time.Time) error
}

type pendingVerificationRepository interface {
	Upsert(ctx context.Context, pv *models.PendingVerification) error
	FindByEmail(ctx context.Context, email string) (*models.PendingVerification, error)
	IncrementAttempts(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}

// resendLimiter throttles how often a fresh code may be issued per email.
type resendLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// otpMailer queues the verification email. Dispatch is fire-and-forget:
// the stored code is authoritative regardless of delivery outcome.
type otpMailer interface {
	EnqueueOTP(email, code string)
}

// VerificationConfig tunes the OTP gate.
type VerificationConfig struct {
	TTL         time.Duration
	MaxAttempts int
	// BypassCode, when non-empty, is accepted for any pending
	// verification. Development only; production config clears it.
	BypassCode string
}

// VerificationService owns the registration OTP state machine: a signup
// creates an unverified account plus a pending code, and only a correct,
// unexpired code within the attempt budget flips the account to verified.
type VerificationService struct {
	users     verificationUserRepository
	pending   pendingVerificationRepository
	limiter   resendLimiter
	mail      otpMailer
	validator *validator.Validate
	logger    *zap.Logger
	config    VerificationConfig
	now       func() time.Time
}

// NewVerificationService constructs a VerificationService instance.
func NewVerificationService(users verificationUserRepository, pending pendingVerificationRepository, limiter resendLimiter, mail otpMailer, validate *validator.Validate, logger *zap.Logger, config VerificationConfig) *VerificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	return &VerificationService{
		users:     users,
		pending:   pending,
		limiter:   limiter,
		mail:      mail,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BeginRegistration creates (or refreshes) an unverified account and
// issues a fresh OTP. Re-registering before verification supersedes the
// previous code, so at most one code is ever live per email.
func (s *VerificationService) BeginRegistration(ctx context.Context, req models.RegisterRequest) (*models.PendingVerification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	email := normalizeEmail(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Verified:
		return nil, appErrors.ErrDuplicateEmail
	case err == nil, errors.Is(err, sql.ErrNoRows):
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing account")
	}

	// A throttled request must not touch the credential store, so the
	// limiter is consulted before the password hash is written.
	if err := s.allowIssue(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         models.UserRole(req.Role),
		Verified:     false,
	}

	if existing != nil {
		// Unverified account: reuse the row instead of duplicating it.
		user.ID = existing.ID
		if err := s.users.UpdateUnverified(ctx, user); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to refresh registration")
		}
	} else {
		if err := s.users.Create(ctx, user); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
		}
	}

	return s.issueCode(ctx, email)
}

// Resend issues a new code for an email that is still mid-registration.
func (s *VerificationService) Resend(ctx context.Context, req models.ResendOTPRequest) (*models.PendingVerification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resend payload")
	}

	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoPending
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	if user.Verified {
		return nil, appErrors.Clone(appErrors.ErrNoPending, "account is already verified")
	}

	if err := s.allowIssue(ctx, email); err != nil {
		return nil, err
	}

	return s.issueCode(ctx, email)
}

// Verify checks a submitted code against the pending verification and,
// on success, marks the account verified and consumes the pending row.
// A wrong code keeps its generic message so the endpoint cannot be used
// as an oracle for which codes exist.
func (s *VerificationService) Verify(ctx context.Context, req models.VerifyEmailRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid verification payload")
	}

	email := normalizeEmail(req.Email)

	pv, err := s.pending.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoPending
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load verification")
	}

	if pv.Expired(s.now()) {
		return nil, appErrors.ErrOTPExpired
	}

	if pv.Attempts >= s.config.MaxAttempts {
		// Refused before consuming a guess: the exhausted state is
		// sticky until a fresh code is requested.
		return nil, appErrors.ErrTooManyOTP
	}

	if !s.matchesBypass(req.Code) {
		if _, err := s.pending.IncrementAttempts(ctx, email); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attempt")
		}
		if subtle.ConstantTimeCompare([]byte(pv.Code), []byte(req.Code)) != 1 {
			return nil, appErrors.ErrInvalidOTP
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoPending
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	now := s.now()
	if err := s.users.MarkVerified(ctx, user.ID, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark account verified")
	}
	if err := s.pending.Delete(ctx, email); err != nil {
		s.logger.Warn("failed to delete consumed verification", zap.Error(err), zap.String("email", email))
	}

	user.Verified = true
	s.logger.Info("email verified", zap.String("user_id", user.ID))
	return user, nil
}

// allowIssue consumes one resend-limiter token for the email. Callers
// invoke it exactly once per request, before any account state changes.
func (s *VerificationService) allowIssue(ctx context.Context, email string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.logger.Warn("otp resend limiter unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		return appErrors.ErrResendThrottled
	}
	return nil
}

func (s *VerificationService) issueCode(ctx context.Context, email string) (*models.PendingVerification, error) {
	code, err := generateOTP()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate code")
	}

	now := s.now()
	pv := &models.PendingVerification{
		Email:     email,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TTL),
		Attempts:  0,
	}
	if err := s.pending.Upsert(ctx, pv); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store verification")
	}

	// The transaction above is authoritative; delivery happens async
	// and its outcome never rolls back the stored code.
	if s.mail != nil {
		s.mail.EnqueueOTP(email, code)
	}

	s.logger.Info("verification code issued", zap.String("email", email), zap.Time("expires_at", pv.ExpiresAt))
	return pv, nil
}

func (s *VerificationService) matchesBypass(code string) bool {
	if s.config.BypassCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.config.BypassCode), []byte(code)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTP draws a uniform 6-digit numeric code from crypto/rand.
func generateOTP() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint64(buf[:]) % 1000000

	digits := make([]byte, otpLength)
	for i := otpLength - 1; i >= 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits), nil
}
