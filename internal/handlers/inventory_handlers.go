package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/minizon/minizon/internal/models"
)

// GetMyInventory is the handler for GET /v1/inventory.
func (h *Handlers) GetMyInventory(c *gin.Context) {
	records, err := h.Inventory.ListForSeller(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": records})
}

type CreateInventoryInput struct {
	ItemID   int64           `json:"itemId" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,gt=0"`
}

// CreateInventoryRecord is the handler for POST /v1/inventory: list an item
// for sale. Listing the same item twice fails with a conflict.
func (h *Handlers) CreateInventoryRecord(c *gin.Context) {
	var input CreateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.Sign() < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	rec := &models.InventoryRecord{
		SellerID: currentUserID(c),
		ItemID:   input.ItemID,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if err := h.Inventory.Create(c.Request.Context(), rec); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item listed for sale", "record": rec})
}

type UpdateInventoryInput struct {
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"gte=0"`
}

// UpdateInventoryRecord is the handler for PUT /v1/inventory/:item_id.
// A quantity of 0 delists the item entirely. Price edits do not touch the
// snapshots already staged in buyers' carts.
func (h *Handlers) UpdateInventoryRecord(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var input UpdateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.Sign() < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	err = h.Inventory.Update(c.Request.Context(), currentUserID(c), itemID, input.Price, input.Quantity)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if input.Quantity == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Inventory record removed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory record updated"})
}

// DeleteInventoryRecord is the handler for DELETE /v1/inventory/:item_id.
func (h *Handlers) DeleteInventoryRecord(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	if err := h.Inventory.Delete(c.Request.Context(), currentUserID(c), itemID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory record removed"})
}
