package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minizon/minizon/internal/models"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateCategory is the handler for POST /v1/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Catalog.CreateCategory(c.Request.Context(), input.Name)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// GetAllCategories is the handler for GET /v1/categories.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type CreateItemInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	CategoryID  int64  `json:"categoryId" binding:"required"`
}

// CreateItem is the handler for POST /v1/items. Creating a catalog entry
// does not list it for sale; that is a separate inventory operation.
func (h *Handlers) CreateItem(c *gin.Context) {
	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.Item{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		CreatorID:   currentUserID(c),
	}
	if err := h.Catalog.CreateItem(c.Request.Context(), item); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item created", "item": item})
}

// SearchItems is the handler for GET /v1/items?q=...&category=...
func (h *Handlers) SearchItems(c *gin.Context) {
	var categoryID int64
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		categoryID = id
	}

	items, err := h.Catalog.SearchItems(c.Request.Context(), c.Query("q"), categoryID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItem is the handler for GET /v1/items/:id. The response carries the
// live offers plus price/rating aggregates.
func (h *Handlers) GetItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	detail, err := h.Catalog.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": detail})
}
