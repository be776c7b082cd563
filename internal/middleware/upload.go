// upload.go is the ingress layer for PDF uploads.
//
// The multipart body is parsed entirely in memory (the parse budget is
// larger than the size ceiling, so nothing spills to temp files). A valid
// file is stored on the context as a models.UploadedDocument; a missing file
// is left for the handler to report.
package middleware

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

const uploadKey = "upload"

// multipartOverhead is allowed on top of the file ceiling for boundaries,
// part headers and small text fields such as searchQuery.
const multipartOverhead = 1 << 20

// MsgNotPDF is returned for uploads not declared as application/pdf.
const MsgNotPDF = "Only PDF files are allowed"

// TooLargeMessage is returned for uploads over maxBytes.
func TooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("File size too large. Maximum size is %dMB", maxBytes>>20)
}

// PDFUpload validates and buffers the PDF in the given multipart field.
// Uploads that are not declared application/pdf, or that exceed maxBytes,
// are rejected with 400 before the handler runs.
func PDFUpload(field string, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

		if err := c.Request.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortTooLarge(c, maxBytes)
				return
			}
			// Not multipart or no body at all: the handler reports the missing file
			c.Next()
			return
		}

		files := c.Request.MultipartForm.File[field]
		if len(files) == 0 {
			c.Next()
			return
		}
		header := files[0]

		mediaType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
		if mediaType != "application/pdf" {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgNotPDF})
			return
		}

		if header.Size > maxBytes {
			abortTooLarge(c, maxBytes)
			return
		}

		f, err := header.Open()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Failed to read uploaded file",
				Details: err.Error(),
			})
			return
		}
		defer f.Close()

		// Read one byte past the ceiling so an understated part size still trips the limit
		data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Failed to read uploaded file",
				Details: err.Error(),
			})
			return
		}
		if int64(len(data)) > maxBytes {
			abortTooLarge(c, maxBytes)
			return
		}

		c.Set(uploadKey, &models.UploadedDocument{
			Filename:    header.Filename,
			Size:        int64(len(data)),
			ContentType: mediaType,
			Content:     data,
		})
		c.Next()
	}
}

// GetUpload returns the document stored by PDFUpload, or nil if the request
// carried no file.
func GetUpload(c *gin.Context) *models.UploadedDocument {
	v, ok := c.Get(uploadKey)
	if !ok {
		return nil
	}
	doc, _ := v.(*models.UploadedDocument)
	return doc
}

func abortTooLarge(c *gin.Context, maxBytes int64) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: TooLargeMessage(maxBytes)})
}
