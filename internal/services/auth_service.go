package services

import (
	"context"
	"errors"
	"sync"

	"shelves/internal/repositories"
	"shelves/internal/validation"

	log "github.com/sirupsen/logrus"
)

// AuthService exchanges credentials for tokens.
type AuthService struct {
	users     repositories.UserRepository
	validator *validation.Validator
	hasher    PasswordHasher
	tokens    TokenIssuer

	decoyOnce sync.Once
	decoy     string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, validator *validation.Validator, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:     users,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
	}
}

// Login returns a signed token for the user registered with email.
// An unknown email and a wrong password both yield ErrInvalidCredentials,
// and both pay for one hash comparison.
func (s *AuthService) Login(ctx context.Context, payload validation.LoginPayload) (string, error) {
	if err := check(s.validator, payload); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return "", err
		}
		s.hasher.Verify(payload.Password, s.decoyHash())
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(payload.Password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.IsAdmin)
}

// decoyHash is compared against when the email is unknown.
func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash("decoy-password-never-matches")
		if err != nil {
			log.WithError(err).Warn("Failed to prepare decoy hash")
		}
		s.decoy = hash
	})
	return s.decoy
}
