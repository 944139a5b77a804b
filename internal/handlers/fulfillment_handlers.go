package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetMySales is the handler for GET /v1/sales: the order lines addressed to
// the caller as seller, fulfilled or not.
func (h *Handlers) GetMySales(c *gin.Context) {
	sales, err := h.Orders.SalesForSeller(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// MarkLineFulfilled is the handler for
// POST /v1/sales/:order_id/:item_id/fulfill. The caller must be the line's
// seller; marking twice fails with a conflict and the order status is
// recomputed from all lines on every successful mark.
func (h *Handlers) MarkLineFulfilled(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	status, err := h.Orders.MarkFulfilled(c.Request.Context(), currentUserID(c), orderID, itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Order line marked fulfilled",
		"orderStatus": status,
	})
}
