package services

import (
	"errors"
	"fmt"

	"shelves/internal/repositories"
	"shelves/internal/validation"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = repositories.ErrNotFound
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user already registered")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrStaleWrite is returned when a concurrent update won the race.
	ErrStaleWrite = errors.New("resource was modified by another request")
)

// ValidationError carries the result of a failed payload check.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Result.First()
}

// NotFoundError names the resource a lookup failed for.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// lookupErr turns a repository miss into a *NotFoundError and wraps anything
// else.
func lookupErr(err error, resource, key string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("failed to load %s %s: %w", resource, key, err)
}

func check(v *validation.Validator, payload interface{}) error {
	if res := v.Validate(payload); !res.Valid {
		return &ValidationError{Result: res}
	}
	return nil
}
