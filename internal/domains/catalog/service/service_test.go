package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/catalog/model"
)

// fakeRepository is an in-memory Repository backed by maps. It mirrors
// the storage contract: favourite and review pairs are unique.
type fakeRepository struct {
	books      map[int64]model.BookInfo
	users      map[int64]bool
	favourites map[[2]int64]bool
	reviews    map[[2]int64]*model.ReviewRecord

	// forceFavouriteConflict makes AddToFavourite report a lost race
	// even when the pre-check saw no favourite.
	forceFavouriteConflict bool

	// forceReviewConflict makes CreateReview fail with the duplicate
	// error even when the pre-check saw no review.
	forceReviewConflict bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:      make(map[int64]model.BookInfo),
		users:      make(map[int64]bool),
		favourites: make(map[[2]int64]bool),
		reviews:    make(map[[2]int64]*model.ReviewRecord),
	}
}

func (f *fakeRepository) ListBooks(_ context.Context, userID int64, _ model.ListBooksFilter) ([]model.BookInfo, error) {
	var out []model.BookInfo
	for _, b := range f.books {
		b.Favourite = f.favourites[[2]int64{userID, b.ID}]
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepository) GetBookDetail(_ context.Context, userID, bookID int64) (*model.BookDetail, error) {
	b, ok := f.books[bookID]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &model.BookDetail{
		ID:        b.ID,
		Name:      b.Name,
		Category:  b.Category,
		Author:    b.Author,
		Favourite: f.favourites[[2]int64{userID, bookID}],
	}, nil
}

func (f *fakeRepository) IsUserFavourite(_ context.Context, userID, bookID int64) (bool, error) {
	if !f.users[userID] {
		return false, model.ErrUserNotFound
	}
	return f.favourites[[2]int64{userID, bookID}], nil
}

func (f *fakeRepository) AddToFavourite(_ context.Context, userID, bookID int64) (bool, error) {
	if !f.users[userID] {
		return false, model.ErrUserNotFound
	}
	if _, ok := f.books[bookID]; !ok {
		return false, model.ErrBookNotFound
	}
	key := [2]int64{userID, bookID}
	if f.favourites[key] || f.forceFavouriteConflict {
		return false, nil
	}
	f.favourites[key] = true
	return true, nil
}

func (f *fakeRepository) GetBookReview(_ context.Context, userID, bookID int64) (*model.ReviewRecord, error) {
	return f.reviews[[2]int64{userID, bookID}], nil
}

func (f *fakeRepository) CreateReview(_ context.Context, userID int64, req model.CreateReviewRequest) (*model.ReviewRecord, error) {
	if _, ok := f.books[req.BookID]; !ok {
		return nil, model.ErrBookNotFound
	}
	key := [2]int64{userID, req.BookID}
	if _, ok := f.reviews[key]; ok || f.forceReviewConflict {
		return nil, model.ErrAlreadyReviewed
	}
	record := &model.ReviewRecord{
		BookID:    req.BookID,
		Rating:    req.Rating,
		Review:    req.Review,
		CreatedAt: time.Now().UTC(),
	}
	f.reviews[key] = record
	return record, nil
}

func newTestService() (ServiceInterface, *fakeRepository) {
	repo := newFakeRepository()
	repo.users[1] = true
	repo.books[10] = model.BookInfo{
		ID:       10,
		Name:     "Solaris",
		Category: "Science Fiction",
		Author:   model.AuthorInfo{ID: 3, FirstName: "Stanislaw", LastName: "Lem"},
	}
	return NewCatalogService(repo), repo
}

// =====================================================
// FAVOURITES
// =====================================================

func TestAddToFavourite(t *testing.T) {
	svc, repo := newTestService()

	err := svc.AddToFavourite(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, repo.favourites[[2]int64{1, 10}])
}

func TestAddToFavouriteTwiceConflicts(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.AddToFavourite(context.Background(), 1, 10))

	err := svc.AddToFavourite(context.Background(), 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyFavourite)
}

func TestAddToFavouriteLostRaceConflicts(t *testing.T) {
	// Pre-check sees no favourite but the insert loses against a
	// concurrent add; the caller still gets the duplicate error.
	svc, repo := newTestService()
	repo.forceFavouriteConflict = true

	err := svc.AddToFavourite(context.Background(), 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyFavourite)
}

func TestAddToFavouriteUnknownBook(t *testing.T) {
	svc, _ := newTestService()

	err := svc.AddToFavourite(context.Background(), 1, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestAddToFavouriteUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	err := svc.AddToFavourite(context.Background(), 42, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

// =====================================================
// REVIEWS
// =====================================================

func TestCreateReview(t *testing.T) {
	svc, _ := newTestService()

	record, err := svc.CreateReview(context.Background(), 1, model.CreateReviewRequest{
		BookID: 10,
		Rating: 5,
		Review: "An ocean that thinks.",
	})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(10), record.BookID)
	assert.Equal(t, 5, record.Rating)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestCreateReviewTwiceConflicts(t *testing.T) {
	svc, _ := newTestService()

	req := model.CreateReviewRequest{BookID: 10, Rating: 4, Review: "Good."}
	_, err := svc.CreateReview(context.Background(), 1, req)
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), 1, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
}

func TestCreateReviewLostRaceConflicts(t *testing.T) {
	svc, repo := newTestService()
	repo.forceReviewConflict = true

	_, err := svc.CreateReview(context.Background(), 1, model.CreateReviewRequest{
		BookID: 10,
		Rating: 3,
		Review: "Fine.",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
}

func TestCreateReviewUnknownBook(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateReview(context.Background(), 1, model.CreateReviewRequest{
		BookID: 999,
		Rating: 3,
		Review: "Fine.",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestDifferentUsersCanReviewSameBook(t *testing.T) {
	svc, repo := newTestService()
	repo.users[2] = true

	req := model.CreateReviewRequest{BookID: 10, Rating: 4, Review: "Good."}
	_, err := svc.CreateReview(context.Background(), 1, req)
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), 2, req)
	assert.NoError(t, err)
}

// =====================================================
// READS
// =====================================================

func TestGetBookNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetBook(context.Background(), 1, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestListBooksMarksFavourites(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.AddToFavourite(context.Background(), 1, 10))

	books, err := svc.ListBooks(context.Background(), 1, model.ListBooksFilter{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.True(t, books[0].Favourite)
}
