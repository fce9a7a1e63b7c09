package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/catalog/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// pgErrorCode extracts the PostgreSQL error code, if any.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// =====================================================
// LIST BOOKS
// =====================================================

func (r *postgresRepository) ListBooks(
	ctx context.Context,
	userID int64,
	filter model.ListBooksFilter,
) ([]model.BookInfo, error) {
	query := `
		SELECT
			b.id, b.name,
			c.name,
			a.id, a.first_name, a.last_name, a.created_at,
			COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
			EXISTS (
				SELECT 1 FROM user_favourites f
				WHERE f.book_id = b.id AND f.user_id = $1
			) AS favourite
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN reviews r ON r.book_id = b.id
	`

	args := []interface{}{userID}
	argCount := 2

	// Build WHERE clause from the optional filters
	where := ""
	addClause := func(clause string, value interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, argCount)
		args = append(args, value)
		argCount++
	}

	if filter.CreatedBefore != nil {
		addClause("b.created_at <= $%d", *filter.CreatedBefore)
	}
	if filter.CreatedAfter != nil {
		addClause("b.created_at >= $%d", *filter.CreatedAfter)
	}
	if len(filter.Authors) > 0 {
		addClause("b.author_id = ANY($%d)", filter.Authors)
	}
	if len(filter.Categories) > 0 {
		addClause("c.name = ANY($%d)", filter.Categories)
	}

	query += where
	query += `
		GROUP BY b.id, b.name, c.name, a.id, a.first_name, a.last_name, a.created_at
		ORDER BY b.id
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.BookInfo{}
	for rows.Next() {
		var book model.BookInfo
		err := rows.Scan(
			&book.ID,
			&book.Name,
			&book.Category,
			&book.Author.ID,
			&book.Author.FirstName,
			&book.Author.LastName,
			&book.Author.CreatedAt,
			&book.AverageRating,
			&book.Favourite,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	return books, nil
}

// =====================================================
// GET BOOK DETAIL
// =====================================================

func (r *postgresRepository) GetBookDetail(
	ctx context.Context,
	userID, bookID int64,
) (*model.BookDetail, error) {
	query := `
		SELECT
			b.id, b.name, b.description, b.created_at,
			c.name,
			a.id, a.first_name, a.last_name, a.created_at,
			COALESCE((SELECT AVG(r.rating) FROM reviews r WHERE r.book_id = b.id), 0)::float8,
			EXISTS (
				SELECT 1 FROM user_favourites f
				WHERE f.book_id = b.id AND f.user_id = $2
			)
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1
	`

	detail := &model.BookDetail{}
	err := r.pool.QueryRow(ctx, query, bookID, userID).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.CreatedAt,
		&detail.Category,
		&detail.Author.ID,
		&detail.Author.FirstName,
		&detail.Author.LastName,
		&detail.Author.CreatedAt,
		&detail.AverageRating,
		&detail.Favourite,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	reviews, err := r.listBookReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}
	detail.Reviews = reviews

	return detail, nil
}

// listBookReviews loads all reviews for a book in creation order.
func (r *postgresRepository) listBookReviews(ctx context.Context, bookID int64) ([]model.ReviewRecord, error) {
	query := `
		SELECT book_id, rating, review, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.ReviewRecord{}
	for rows.Next() {
		var review model.ReviewRecord
		if err := rows.Scan(&review.BookID, &review.Rating, &review.Review, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return reviews, nil
}

// =====================================================
// FAVOURITES
// =====================================================

func (r *postgresRepository) IsUserFavourite(
	ctx context.Context,
	userID, bookID int64,
) (bool, error) {
	if err := r.checkUserExists(ctx, userID); err != nil {
		return false, err
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_favourites
			WHERE user_id = $1 AND book_id = $2
		)
	`

	var favourite bool
	if err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(&favourite); err != nil {
		return false, fmt.Errorf("failed to check favourite: %w", err)
	}

	return favourite, nil
}

func (r *postgresRepository) AddToFavourite(
	ctx context.Context,
	userID, bookID int64,
) (bool, error) {
	if err := r.checkUserExists(ctx, userID); err != nil {
		return false, err
	}
	if err := r.checkBookExists(ctx, bookID); err != nil {
		return false, err
	}

	// ON CONFLICT DO NOTHING makes the insert idempotent while still
	// reporting, via the affected-row count, whether the pair was new.
	query := `
		INSERT INTO user_favourites (user_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, book_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		// The existence checks above race with concurrent deletes;
		// a foreign key violation still means a missing referent.
		if pgErrorCode(err) == pgForeignKeyViolation {
			return false, model.ErrBookNotFound
		}
		return false, fmt.Errorf("failed to add favourite: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// =====================================================
// REVIEWS
// =====================================================

func (r *postgresRepository) GetBookReview(
	ctx context.Context,
	userID, bookID int64,
) (*model.ReviewRecord, error) {
	query := `
		SELECT book_id, rating, review, created_at
		FROM reviews
		WHERE user_id = $1 AND book_id = $2
	`

	review := &model.ReviewRecord{}
	err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&review.BookID,
		&review.Rating,
		&review.Review,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absence is a valid state, not an error
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (r *postgresRepository) CreateReview(
	ctx context.Context,
	userID int64,
	req model.CreateReviewRequest,
) (*model.ReviewRecord, error) {
	if err := r.checkBookExists(ctx, req.BookID); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO reviews (user_id, book_id, rating, review)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	record := &model.ReviewRecord{
		BookID: req.BookID,
		Rating: req.Rating,
		Review: req.Review,
	}

	err := r.pool.QueryRow(ctx, query, userID, req.BookID, req.Rating, req.Review).Scan(&record.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return nil, model.ErrAlreadyReviewed
		case pgForeignKeyViolation:
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return record, nil
}

// =====================================================
// EXISTENCE CHECKS
// =====================================================

func (r *postgresRepository) checkUserExists(ctx context.Context, userID int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) checkBookExists(ctx context.Context, bookID int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return model.ErrBookNotFound
	}
	return nil
}
