package service

import (
	"context"

	"bookcatalog-backend/internal/domains/catalog/model"
)

// ServiceInterface exposes the catalog use cases.
type ServiceInterface interface {
	// ListBooks lists books visible to the user, with optional filters.
	ListBooks(ctx context.Context, userID int64, filter model.ListBooksFilter) ([]model.BookInfo, error)

	// GetBook returns the detail view of one book.
	GetBook(ctx context.Context, userID, bookID int64) (*model.BookDetail, error)

	// AddToFavourite adds the book to the user's favourites. Fails with
	// model.ErrAlreadyFavourite when it is already there.
	AddToFavourite(ctx context.Context, userID, bookID int64) error

	// CreateReview creates the user's review of a book. Fails with
	// model.ErrAlreadyReviewed when the user has reviewed it before.
	CreateReview(ctx context.Context, userID int64, req model.CreateReviewRequest) (*model.ReviewRecord, error)
}
