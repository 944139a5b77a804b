package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minizon/minizon/internal/models"
)

// GetCart is the handler for GET /v1/cart. The total is computed from the
// snapshotted line prices; an empty cart totals "0", never null.
func (h *Handlers) GetCart(c *gin.Context) {
	lines, err := h.Cart.Lines(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"total": models.CartTotal(lines),
	})
}

type AddToCartInput struct {
	ItemID   int64 `json:"itemId" binding:"required"`
	SellerID int64 `json:"sellerId" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

// AddToCart is the handler for POST /v1/cart/items. The line captures the
// seller's current price; later price edits do not change it.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	line, err := h.Cart.Add(c.Request.Context(), currentUserID(c),
		input.ItemID, input.SellerID, input.Quantity)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart", "line": line})
}

type UpdateCartLineInput struct {
	// gte=0 allows setting quantity to 0, which removes the line.
	Quantity int `json:"quantity" binding:"gte=0"`
}

// UpdateCartLine is the handler for PUT /v1/cart/items/:item_id/:seller_id.
func (h *Handlers) UpdateCartLine(c *gin.Context) {
	itemID, sellerID, ok := cartLineKey(c)
	if !ok {
		return
	}

	var input UpdateCartLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Cart.UpdateQuantity(c.Request.Context(), currentUserID(c), itemID, sellerID, input.Quantity)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if input.Quantity == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Cart line removed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart line quantity updated"})
}

// RemoveCartLine is the handler for DELETE /v1/cart/items/:item_id/:seller_id.
func (h *Handlers) RemoveCartLine(c *gin.Context) {
	itemID, sellerID, ok := cartLineKey(c)
	if !ok {
		return
	}

	if err := h.Cart.Remove(c.Request.Context(), currentUserID(c), itemID, sellerID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart line removed"})
}

// cartLineKey parses the (item, seller) pair identifying a cart line. It
// writes the error response itself when parsing fails.
func cartLineKey(c *gin.Context) (itemID, sellerID int64, ok bool) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return 0, 0, false
	}
	sellerID, err = strconv.ParseInt(c.Param("seller_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller id"})
		return 0, 0, false
	}
	return itemID, sellerID, true
}
