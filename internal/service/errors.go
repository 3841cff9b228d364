package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user id does not match any user.
	ErrUserNotFound = errors.New("user not found")
	// ErrSearchFailed marks a search that degraded to an empty result.
	ErrSearchFailed = errors.New("search failed")
	// ErrRecipeNotFound is returned when a recipe reference resolves to nothing.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrReviewNotFound is returned when deleting a review that does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrFavoriteNotFound is returned when removing a favorite that does not exist.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrFavoriteExists is returned when saving a recipe name the user already saved.
	ErrFavoriteExists = errors.New("favorite already exists")
	// ErrForbidden is returned when a user acts on a record they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidToken is returned for bearer tokens that fail validation.
	ErrInvalidToken = errors.New("invalid token")
)

// StoreError reports a failed read or write against the candidate store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
