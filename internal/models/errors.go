package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserExists   = errors.New("user already exists")

	// ErrInvalidData marks a request the caller can fix. Handlers map it
	// to 400; anything unwrapped is a server-side failure and maps to 500.
	ErrInvalidData = errors.New("invalid data")
)

// InsufficientFlashcardsError means a category's pool is too small for the
// requested quiz or marathon shape. The fix is on the user: add more cards.
type InsufficientFlashcardsError struct {
	Category string
	Have     int
	Need     int
}

func (e *InsufficientFlashcardsError) Error() string {
	return fmt.Sprintf("category %q doesn't have enough flashcards: have %d, need %d", e.Category, e.Have, e.Need)
}
