package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type fakeAuthUserRepo struct {
	user    *models.User
	updated bool
}

func (f *fakeAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeAuthUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeAuthUserRepo) UpdateProfile(ctx context.Context, id, fullName, phone, bio string) error {
	f.updated = true
	f.user.FullName = fullName
	f.user.Phone = phone
	f.user.Bio = bio
	return nil
}

func newAuthFixture(t *testing.T) (*fakeAuthUserRepo, *AuthService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("sup3r-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeAuthUserRepo{user: &models.User{
		ID:           "u1",
		Email:        "guardian@example.com",
		FullName:     "Guardian One",
		Role:         models.RoleGuardian,
		PasswordHash: string(hash),
		Verified:     true,
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "tutorhub-test",
	})
	return repo, svc
}

func TestAuthLoginSuccess(t *testing.T) {
	_, svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "guardian@example.com", Password: "sup3r-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, models.RoleGuardian, resp.User.Role)
}

func TestAuthLoginNormalizesEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "Guardian@Example.COM", Password: "sup3r-secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "guardian@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "sup3r-secret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnverifiedAccount(t *testing.T) {
	repo, svc := newAuthFixture(t)
	repo.user.Verified = false

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "guardian@example.com", Password: "sup3r-secret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAccountUnverified.Code, appErrors.FromError(err).Code)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	repo, svc := newAuthFixture(t)

	resp, err := svc.IssueToken(repo.user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleGuardian, claims.Role)
	assert.Equal(t, "guardian@example.com", claims.Email)
	assert.Equal(t, "tutorhub-test", claims.Issuer)
}

func TestAuthValidateTokenWrongSecret(t *testing.T) {
	repo, svc := newAuthFixture(t)

	resp, err := svc.IssueToken(repo.user)
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{Secret: "different", Expiration: time.Hour, Issuer: "tutorhub-test"})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateTokenGarbage(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthUpdateProfile(t *testing.T) {
	repo, svc := newAuthFixture(t)

	user, err := svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{
		FullName: "Guardian Renamed",
		Phone:    "01711111111",
		Bio:      "Parent of two",
	})
	require.NoError(t, err)
	assert.True(t, repo.updated)
	assert.Equal(t, "Guardian Renamed", user.FullName)
	assert.Equal(t, "01711111111", user.Phone)
}

func TestAuthProfileNotFound(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Profile(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
