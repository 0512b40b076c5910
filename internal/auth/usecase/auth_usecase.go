package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"brf-backend/pkg/config"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenResponse carries the issued admin token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthUsecase guards the admin surface. The board has a single shared admin
// password; share links stay unauthenticated by design.
type AuthUsecase interface {
	Login(password string) (*TokenResponse, error)
	ValidateToken(token string) error
}

type authUsecase struct {
	passwordHash []byte
	secret       []byte
	expiry       time.Duration
}

// NewAuthUsecase hashes the configured admin password once at startup so the
// plaintext never lingers in comparisons.
func NewAuthUsecase(cfg *config.Config) (AuthUsecase, error) {
	if cfg.AdminPassword == "" {
		return nil, errors.New("ADMIN_PASSWORD is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &authUsecase{
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		expiry:       cfg.JWTAccessExpiry,
	}, nil
}

func (u *authUsecase) Login(password string) (*TokenResponse, error) {
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(u.expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}
	return nil
}
