package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SuggestItemDescription is the handler for
// POST /v1/items/:id/suggest-description. It drafts a description for an
// existing catalog item from its name and category. The feature is disabled
// (503) when no Gemini API key was configured at startup.
func (h *Handlers) SuggestItemDescription(c *gin.Context) {
	if h.Suggester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Description suggestions are not enabled"})
		return
	}

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

	suggestion, err := h.Suggester.SuggestDescription(c.Request.Context(), detail.Name, detail.CategoryName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Suggestion service unavailable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
