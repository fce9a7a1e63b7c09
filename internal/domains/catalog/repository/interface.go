package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/catalog/model"
)

// =====================================================
// CATALOG REPOSITORY INTERFACE
// =====================================================

// Repository owns all read/write access to the catalog schema. It
// returns read models, never raw rows, so the service layer stays
// decoupled from the storage technology.
type Repository interface {
	// ListBooks lists books matching the filter, each with category name,
	// embedded author, average rating and the requesting user's
	// favourite flag.
	ListBooks(ctx context.Context, userID int64, filter model.ListBooksFilter) ([]model.BookInfo, error)

	// GetBookDetail returns the detail view of one book, including its
	// reviews in creation order. Returns model.ErrBookNotFound when the
	// book does not exist.
	GetBookDetail(ctx context.Context, userID, bookID int64) (*model.BookDetail, error)

	// IsUserFavourite reports whether the user has favourited the book.
	// Returns model.ErrUserNotFound when the user does not exist.
	IsUserFavourite(ctx context.Context, userID, bookID int64) (bool, error)

	// AddToFavourite adds the book to the user's favourites. The insert
	// is atomic: the returned bool is false when the pair already
	// existed. Returns model.ErrUserNotFound / model.ErrBookNotFound for
	// missing ids.
	AddToFavourite(ctx context.Context, userID, bookID int64) (bool, error)

	// GetBookReview returns the user's review of the book, or (nil, nil)
	// when no review exists for that pair.
	GetBookReview(ctx context.Context, userID, bookID int64) (*model.ReviewRecord, error)

	// CreateReview inserts a new review and returns it with the
	// storage-assigned creation timestamp. Returns model.ErrBookNotFound
	// when the book does not exist and model.ErrAlreadyReviewed when the
	// (user, book) uniqueness constraint rejects the insert.
	CreateReview(ctx context.Context, userID int64, review model.CreateReviewRequest) (*model.ReviewRecord, error)
}
