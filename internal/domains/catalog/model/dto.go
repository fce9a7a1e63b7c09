package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// READ MODELS
// =====================================================

// AuthorInfo is the author projection embedded in book read models.
type AuthorInfo struct {
	ID        int64     `json:"author_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// BookInfo is the list projection of a book: category name, embedded
// author, average rating over its reviews (0 when it has none) and
// whether the requesting user has favourited it.
type BookInfo struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Author        AuthorInfo `json:"author"`
	AverageRating float64    `json:"average_rating"`
	Favourite     bool       `json:"favourite"`
}

// ReviewRecord is the review projection returned to clients. CreatedAt
// carries the storage-assigned, timezone-aware creation timestamp.
type ReviewRecord struct {
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetail extends BookInfo with description, creation timestamp and
// the book's reviews in creation order.
type BookDetail struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Author        AuthorInfo     `json:"author"`
	Description   string         `json:"description"`
	CreatedAt     time.Time      `json:"created_at"`
	Reviews       []ReviewRecord `json:"reviews"`
	AverageRating float64        `json:"average_rating"`
	Favourite     bool           `json:"favourite"`
}

// =====================================================
// FILTERS
// =====================================================

// ListBooksFilter carries the optional list filters. Nil / empty values
// mean "no filtering on this dimension"; both timestamp bounds are
// inclusive.
type ListBooksFilter struct {
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	Authors       []int64
	Categories    []string
}

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest is the payload for POST /books/reviews.
type CreateReviewRequest struct {
	BookID int64  `json:"book_id"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Review,
			validation.Required.Error("review text is required"),
			validation.Length(1, 5000),
		),
	)
}

// AddFavouriteRequest is the payload for POST /books/favourites.
type AddFavouriteRequest struct {
	BookID int64 `json:"book_id"`
}

func (r AddFavouriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
		),
	)
}
