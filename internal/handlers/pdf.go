// pdf.go handles the PDF upload endpoints.
//
// POST /api/upload-pdf             Extract text and ask the model for a summary
// POST /api/upload-pdf-and-search  Extract text and search the web with it
//
// Both routes run behind middleware.PDFUpload, which rejects non-PDF and
// oversized files and buffers the upload in memory.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/middleware"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

// UploadField is the multipart field carrying the PDF.
const UploadField = "pdf"

// SearchQueryField is the optional multipart field overriding the derived query.
const SearchQueryField = "searchQuery"

// UploadPDF extracts the PDF and returns its text with an AI summary.
// POST /api/upload-pdf
func (h *Handler) UploadPDF(c *gin.Context) {
	doc := middleware.GetUpload(c)
	if doc == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No PDF file uploaded"})
		return
	}

	result, err := h.Analysis.AnalyzePDF(c.Request.Context(), doc)
	if err != nil {
		h.Log.Error("PDF analysis failed",
			zap.String("filename", doc.Filename),
			zap.String("requestId", middleware.GetRequestID(c)),
			zap.Error(err))
		h.serverError(c, "Failed to process PDF file", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UploadPDFAndSearch extracts the PDF and searches the web with the
// searchQuery field, or with the start of the text when it is absent.
// POST /api/upload-pdf-and-search
func (h *Handler) UploadPDFAndSearch(c *gin.Context) {
	doc := middleware.GetUpload(c)
	if doc == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No PDF file uploaded"})
		return
	}

	result, err := h.Analysis.SearchPDF(c.Request.Context(), doc, c.PostForm(SearchQueryField))
	if err != nil {
		h.Log.Error("PDF search failed",
			zap.String("filename", doc.Filename),
			zap.String("requestId", middleware.GetRequestID(c)),
			zap.Error(err))
		h.serverError(c, "Failed to process request", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
