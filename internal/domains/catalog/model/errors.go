package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound     = "CAT001"
	ErrCodeUserNotFound     = "CAT002"
	ErrCodeAlreadyFavourite = "CAT003"
	ErrCodeAlreadyReviewed  = "CAT004"
)

// Errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFavourite = errors.New("book already in favourites")
	ErrAlreadyReviewed  = errors.New("already reviewed this book")
)

// CatalogError custom error type
type CatalogError struct {
	Code    string
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewUserNotFoundError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewAlreadyFavouriteError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeAlreadyFavourite,
		Message: "Book is already in your favourites",
		Err:     ErrAlreadyFavourite,
	}
}

func NewAlreadyReviewedError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeAlreadyReviewed,
		Message: "You have already reviewed this book",
		Err:     ErrAlreadyReviewed,
	}
}
