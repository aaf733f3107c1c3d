package domain

import (
	"errors"
	"fmt"
)

// Root error kinds. Transport maps these to status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("wrong credentials provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrArticleNotFound  = fmt.Errorf("article %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	ErrUserExists      = fmt.Errorf("user %w", ErrConflict)
	ErrArticleURLTaken = fmt.Errorf("article url %w", ErrConflict)
	ErrCategoryExists  = fmt.Errorf("category %w", ErrConflict)

	ErrNoImages        = fmt.Errorf("%w: no images provided", ErrInvalidInput)
	ErrImageTooLarge   = fmt.Errorf("%w: image exceeds size limit", ErrInvalidInput)
	ErrUnexpectedImage = fmt.Errorf("%w: unexpected image field", ErrInvalidInput)
	ErrInvalidRole     = fmt.Errorf("%w: unknown role", ErrInvalidInput)
)

// ForbiddenError is an authorization refusal carrying a client-facing reason.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

// Is makes every ForbiddenError match ErrForbidden.
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

var (
	ErrNotAuthorized = &ForbiddenError{Reason: "User not authorized"}
	ErrNoPermissions = &ForbiddenError{Reason: "No permissions"}
	ErrAccessDenied  = &ForbiddenError{Reason: "Access denied"}
)
