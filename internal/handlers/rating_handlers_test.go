package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minizon/minizon/internal/models"
	"github.com/minizon/minizon/internal/store"
)

// mockRatingStore implements RatingStore for testing.
type mockRatingStore struct {
	itemRatings   []models.ItemRating
	sellerRatings []models.SellerRating
	average       *float64
	err           error
}

func (m *mockRatingStore) RateItem(ctx context.Context, itemID, raterID int64, rating int, comment string) error {
	return m.err
}

func (m *mockRatingStore) UpvoteRating(ctx context.Context, itemID, raterID, voterID int64) error {
	return m.err
}

func (m *mockRatingStore) ItemRatings(ctx context.Context, itemID int64) ([]models.ItemRating, error) {
	return m.itemRatings, m.err
}

func (m *mockRatingStore) RateSeller(ctx context.Context, sellerID, raterID int64, rating int) error {
	return m.err
}

func (m *mockRatingStore) SellerRatings(ctx context.Context, sellerID int64) ([]models.SellerRating, *float64, error) {
	return m.sellerRatings, m.average, m.err
}

func newRatingRouter(mock *mockRatingStore) *gin.Engine {
	h := &Handlers{Ratings: mock}

	r := gin.New()
	r.Use(authAs(1))
	r.POST("/items/:id/ratings", h.RateItem)
	r.GET("/items/:id/ratings", h.GetItemRatings)
	r.POST("/items/:id/ratings/:rater_id/upvote", h.UpvoteItemRating)
	r.POST("/sellers/:id/ratings", h.RateSeller)
	r.GET("/sellers/:id/ratings", h.GetSellerRatings)
	return r
}

func TestRateItem_Success(t *testing.T) {
	router := newRatingRouter(&mockRatingStore{})

	recorder := doJSON(t, router, "POST", "/items/5/ratings", `{"rating":4,"comment":"Works well"}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Rating recorded")
}

func TestRateItem_RejectsOutOfRangeRating(t *testing.T) {
	router := newRatingRouter(&mockRatingStore{})

	recorder := doJSON(t, router, "POST", "/items/5/ratings", `{"rating":6}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpvoteItemRating_OnePerVoter(t *testing.T) {
	router := newRatingRouter(&mockRatingStore{err: store.ErrDuplicateUpvote})

	recorder := doJSON(t, router, "POST", "/items/5/ratings/3/upvote", "")

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestUpvoteItemRating_UnknownRating(t *testing.T) {
	router := newRatingRouter(&mockRatingStore{err: store.ErrNotFound})

	recorder := doJSON(t, router, "POST", "/items/5/ratings/999/upvote", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetItemRatings_CarriesUpvoteCounts(t *testing.T) {
	router := newRatingRouter(&mockRatingStore{itemRatings: []models.ItemRating{
		{ItemID: 5, RaterID: 3, Rating: 4, Comment: "Works well", RaterName: "Bob", Upvotes: 2},
	}})

	recorder := doJSON(t, router, "GET", "/items/5/ratings", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"upvotes":2`)
}

func TestGetSellerRatings_AverageIsNullWithoutRatings(t *testing.T) {
	router := newRatingRouter(&mockRatingStore{sellerRatings: []models.SellerRating{}})

	recorder := doJSON(t, router, "GET", "/sellers/2/ratings", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"averageRating":null`)
}

func TestGetSellerRatings_Average(t *testing.T) {
	avg := 4.5
	router := newRatingRouter(&mockRatingStore{
		sellerRatings: []models.SellerRating{
			{SellerID: 2, RaterID: 3, Rating: 4},
			{SellerID: 2, RaterID: 4, Rating: 5},
		},
		average: &avg,
	})

	recorder := doJSON(t, router, "GET", "/sellers/2/ratings", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"averageRating":4.5`)
}
