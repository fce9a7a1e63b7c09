package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateReviewRequestValidate(t *testing.T) {
	valid := CreateReviewRequest{BookID: 1, Rating: 3, Review: "Readable."}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  CreateReviewRequest
	}{
		{"missing book id", CreateReviewRequest{Rating: 3, Review: "ok"}},
		{"rating zero", CreateReviewRequest{BookID: 1, Review: "ok"}},
		{"rating too high", CreateReviewRequest{BookID: 1, Rating: 6, Review: "ok"}},
		{"negative rating", CreateReviewRequest{BookID: 1, Rating: -1, Review: "ok"}},
		{"empty review", CreateReviewRequest{BookID: 1, Rating: 3}},
		{"review too long", CreateReviewRequest{BookID: 1, Rating: 3, Review: strings.Repeat("a", 5001)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestCreateReviewRequestRatingBounds(t *testing.T) {
	for _, rating := range []int{1, 2, 3, 4, 5} {
		req := CreateReviewRequest{BookID: 1, Rating: rating, Review: "ok"}
		assert.NoError(t, req.Validate(), "rating %d should be accepted", rating)
	}
}

func TestAddFavouriteRequestValidate(t *testing.T) {
	assert.NoError(t, AddFavouriteRequest{BookID: 1}.Validate())
	assert.Error(t, AddFavouriteRequest{}.Validate())
}

func TestAuthorFullName(t *testing.T) {
	a := Author{FirstName: "Ursula", LastName: "Le Guin"}
	assert.Equal(t, "Le Guin Ursula", a.FullName())
}
