package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RateInput struct {
	Rating  int    `json:"rating" binding:"gte=0,lte=5"`
	Comment string `json:"comment" binding:"max=500"`
}

// RateItem is the handler for POST /v1/items/:id/ratings. Re-rating the
// same item overwrites the caller's earlier rating.
func (h *Handlers) RateItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var input RateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.Ratings.RateItem(c.Request.Context(), itemID, currentUserID(c), input.Rating, input.Comment)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Rating recorded"})
}

// GetItemRatings is the handler for GET /v1/items/:id/ratings.
func (h *Handlers) GetItemRatings(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	ratings, err := h.Ratings.ItemRatings(c.Request.Context(), itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// UpvoteItemRating is the handler for
// POST /v1/items/:id/ratings/:rater_id/upvote. One upvote per voter.
func (h *Handlers) UpvoteItemRating(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	raterID, err := strconv.ParseInt(c.Param("rater_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rater id"})
		return
	}

	err = h.Ratings.UpvoteRating(c.Request.Context(), itemID, raterID, currentUserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Upvote recorded"})
}

// RateSeller is the handler for POST /v1/sellers/:id/ratings.
func (h *Handlers) RateSeller(c *gin.Context) {
	sellerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller id"})
		return
	}

	var input RateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.Ratings.RateSeller(c.Request.Context(), sellerID, currentUserID(c), input.Rating)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Rating recorded"})
}

// GetSellerRatings is the handler for GET /v1/sellers/:id/ratings.
func (h *Handlers) GetSellerRatings(c *gin.Context) {
	sellerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller id"})
		return
	}

	ratings, avg, err := h.Ratings.SellerRatings(c.Request.Context(), sellerID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings, "averageRating": avg})
}
