package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidTitle = errors.New("invalid title")
	ErrInvalidName  = errors.New("invalid name")
)

// Validation constants
const (
	MaxTitleLength = 255
)

// ValidateTitle validates a user-supplied title, name or description.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidTitle)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidTitle, MaxTitleLength)
	}
	return nil
}

// ValidateMemberName validates a tour member's display name.
func ValidateMemberName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxTitleLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidName, MaxTitleLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
