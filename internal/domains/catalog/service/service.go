package service

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog-backend/internal/domains/catalog/model"
	"bookcatalog-backend/internal/domains/catalog/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type catalogService struct {
	repo repository.Repository
}

func NewCatalogService(repo repository.Repository) ServiceInterface {
	return &catalogService{repo: repo}
}

// ListBooks delegates to the repository; there is no extra logic here.
func (s *catalogService) ListBooks(
	ctx context.Context,
	userID int64,
	filter model.ListBooksFilter,
) ([]model.BookInfo, error) {
	return s.repo.ListBooks(ctx, userID, filter)
}

// GetBook delegates to the repository.
func (s *catalogService) GetBook(
	ctx context.Context,
	userID, bookID int64,
) (*model.BookDetail, error) {
	return s.repo.GetBookDetail(ctx, userID, bookID)
}

// AddToFavourite enforces the one-favourite-per-pair contract.
//
// The membership pre-check gives the common duplicate a clean answer,
// but the real guarantee comes from the storage constraint: two
// concurrent adds for the same pair cannot both insert, and the losing
// insert reports the pair as already present.
func (s *catalogService) AddToFavourite(ctx context.Context, userID, bookID int64) error {
	favourite, err := s.repo.IsUserFavourite(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to check favourite: %w", err)
	}
	if favourite {
		return model.NewAlreadyFavouriteError()
	}

	inserted, err := s.repo.AddToFavourite(ctx, userID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookNotFound):
			return model.NewBookNotFoundError()
		case errors.Is(err, model.ErrUserNotFound):
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	if !inserted {
		// Lost the race against a concurrent add of the same pair
		return model.NewAlreadyFavouriteError()
	}

	return nil
}

// CreateReview enforces the one-review-per-pair contract the same way:
// pre-check for the friendly path, unique constraint for correctness.
func (s *catalogService) CreateReview(
	ctx context.Context,
	userID int64,
	req model.CreateReviewRequest,
) (*model.ReviewRecord, error) {
	existing, err := s.repo.GetBookReview(ctx, userID, req.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, model.NewAlreadyReviewedError()
	}

	record, err := s.repo.CreateReview(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyReviewed):
			return nil, model.NewAlreadyReviewedError()
		case errors.Is(err, model.ErrBookNotFound):
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return record, nil
}
