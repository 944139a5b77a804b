package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Checkout is the handler for POST /v1/checkout. The whole conversion from
// cart to order runs in one transaction in the store; any failure leaves
// inventory, cart, orders and balance exactly as they were.
func (h *Handlers) Checkout(c *gin.Context) {
	order, err := h.Orders.Checkout(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Order created successfully",
		"orderId":   order.ID,
		"reference": order.Reference,
		"totalPaid": order.TotalPrice,
	})
}

// GetMyOrders is the handler for GET /v1/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.ListForBuyer(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /v1/orders/:id. Ownership is
// verified in the store; someone else's order reads as not found.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, lines, err := h.Orders.Get(c.Request.Context(), currentUserID(c), orderID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "lines": lines})
}
