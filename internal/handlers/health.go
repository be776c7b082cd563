// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, form fields, body, headers)
// - Response methods (JSON, Data, Status)
// - Middleware data (c.Get/c.Set)
//
// Related handlers are grouped into a struct (Handler) that holds shared
// dependencies.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/services/analysis"
)

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Tests build a Handler
// around an analysis.Service with stub adapters.
type Handler struct {
	Analysis *analysis.Service
	Log      *zap.Logger
	Version  string

	// RedactErrorDetails drops upstream error text from 500 responses.
	RedactErrorDetails bool
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(svc *analysis.Service, log *zap.Logger, version string, redactDetails bool) *Handler {
	return &Handler{
		Analysis:           svc,
		Log:                log,
		Version:            version,
		RedactErrorDetails: redactDetails,
	}
}

// HealthCheck returns the API health status.
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Message: "Server is running",
		Version: h.Version,
	})
}

// serverError writes a 500 with the upstream message in details.
func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)

	resp := models.ErrorResponse{Error: msg}
	if !h.RedactErrorDetails {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
