package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/middleware"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

// Search runs a web search for a free-form query.
// POST /api/search
func (h *Handler) Search(c *gin.Context) {
	var req models.SearchRequest
	// A malformed body is treated the same as a missing query
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Search query is required"})
		return
	}

	result, err := h.Analysis.Search(c.Request.Context(), req.Query)
	if err != nil {
		h.Log.Error("search failed",
			zap.String("requestId", middleware.GetRequestID(c)),
			zap.Error(err))
		h.serverError(c, "Failed to perform search", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
