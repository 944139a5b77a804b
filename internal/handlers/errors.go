package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minizon/minizon/internal/store"
)

// respondStoreError maps the store error taxonomy onto HTTP statuses. Every
// condition here is user-facing and recoverable; anything unknown is a 500.
func respondStoreError(c *gin.Context, err error) {
	var stockErr *store.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":    stockErr.Error(),
			"sellerId": stockErr.SellerID,
			"itemId":   stockErr.ItemID,
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, store.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrDuplicateListing),
		errors.Is(err, store.ErrDuplicateCartLine),
		errors.Is(err, store.ErrSelfInventoryConflict),
		errors.Is(err, store.ErrAlreadyFulfilled),
		errors.Is(err, store.ErrDuplicateUpvote):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("unexpected store error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
