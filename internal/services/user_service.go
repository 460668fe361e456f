package services

import (
	"context"
	"errors"
	"fmt"

	"shelves/internal/models"
	"shelves/internal/repositories"
	"shelves/internal/validation"

	log "github.com/sirupsen/logrus"
)

// PasswordHasher is a one-way hash with a compare oracle.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs tokens for a subject.
type TokenIssuer interface {
	Issue(subjectID string, isAdmin bool) (string, error)
}

// UserService handles registration and user administration.
type UserService struct {
	repo      repositories.UserRepository
	validator *validation.Validator
	hasher    PasswordHasher
	tokens    TokenIssuer
	events    EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, validator *validation.Validator, hasher PasswordHasher, tokens TokenIssuer, events EventPublisher) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		events:    events,
	}
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user", id)
	}
	return user, nil
}

// Register creates a non-admin user and returns it with a freshly issued
// token. The isAdmin flag of a public registration is ignored.
func (s *UserService) Register(ctx context.Context, payload validation.UserPayload) (*models.User, string, error) {
	if err := check(s.validator, payload); err != nil {
		return nil, "", err
	}
	if err := s.ensureEmailFree(ctx, payload.Email, ""); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		Username: payload.Username,
		Email:    payload.Email,
		Password: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	publishEvent(s.events, "user.registered", user.ID)
	return user, token, nil
}

// Update overwrites a user's profile. The password is re-hashed only when
// it differs from the stored one.
func (s *UserService) Update(ctx context.Context, id string, payload validation.UserPayload) (*models.User, error) {
	if err := check(s.validator, payload); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Email != user.Email {
		if err := s.ensureEmailFree(ctx, payload.Email, user.ID); err != nil {
			return nil, err
		}
	}

	if !s.hasher.Verify(payload.Password, user.Password) {
		hash, err := s.hasher.Hash(payload.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	user.Username = payload.Username
	user.Email = payload.Email
	if payload.IsAdmin != nil {
		user.IsAdmin = *payload.IsAdmin
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, lookupErr(err, "user", id)
	}
	publishEvent(s.events, "user.updated", user.ID)
	return user, nil
}

// Remove deletes a user and returns it.
func (s *UserService) Remove(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupErr(err, "user", id)
	}
	publishEvent(s.events, "user.deleted", user.ID)
	return user, nil
}

// EnsureAdmin creates an admin account for email unless one is registered.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin %s: %w", email, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	admin := &models.User{Username: username, Email: email, Password: hash, IsAdmin: true}
	if err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin %s: %w", email, err)
	}
	log.WithField("user_id", admin.ID).Info("Seeded admin user")
	return nil
}

// ensureEmailFree fails with ErrEmailTaken if email belongs to a user other
// than exceptID. Matching is exact and case-sensitive.
func (s *UserService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil && existing != nil && existing.ID != exceptID {
		return ErrEmailTaken
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}
