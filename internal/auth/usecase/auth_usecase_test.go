package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brf-backend/pkg/config"
)

func newTestAuth(t *testing.T) AuthUsecase {
	t.Helper()
	uc, err := NewAuthUsecase(&config.Config{
		AdminPassword:   "s3cret",
		JWTSecret:       "test-signing-key",
		JWTAccessExpiry: time.Hour,
	})
	require.NoError(t, err)
	return uc
}

func TestNewAuthUsecaseRequiresPassword(t *testing.T) {
	_, err := NewAuthUsecase(&config.Config{JWTSecret: "k"})
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	uc := newTestAuth(t)

	_, err := uc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesValidToken(t *testing.T) {
	uc := newTestAuth(t)

	resp, err := uc.Login("s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	assert.NoError(t, uc.ValidateToken(resp.AccessToken))
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	uc := newTestAuth(t)

	assert.ErrorIs(t, uc.ValidateToken("not-a-jwt"), ErrInvalidCredentials)

	other, err := NewAuthUsecase(&config.Config{
		AdminPassword:   "s3cret",
		JWTSecret:       "a-different-key",
		JWTAccessExpiry: time.Hour,
	})
	require.NoError(t, err)
	resp, err := other.Login("s3cret")
	require.NoError(t, err)

	assert.ErrorIs(t, uc.ValidateToken(resp.AccessToken), ErrInvalidCredentials)
}
