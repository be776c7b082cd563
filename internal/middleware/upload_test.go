package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

const testMaxBytes = 1 << 20

func init() {
	gin.SetMode(gin.TestMode)
}

// uploadEngine echoes what PDFUpload stored so tests can inspect it.
func uploadEngine(maxBytes int64) *gin.Engine {
	r := gin.New()
	r.POST("/upload", PDFUpload("pdf", maxBytes), func(c *gin.Context) {
		doc := GetUpload(c)
		if doc == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No PDF file uploaded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"filename":    doc.Filename,
			"size":        doc.Size,
			"contentType": doc.ContentType,
			"content":     string(doc.Content),
		})
	})
	return r
}

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("searchQuery", "ignored"))
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doUpload(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPDFUpload_StoresDocument(t *testing.T) {
	body, ct := multipartBody(t, "pdf", "report.pdf", "application/pdf", []byte("%PDF-1.4 test"))

	w := doUpload(uploadEngine(testMaxBytes), body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "report.pdf", got["filename"])
	assert.Equal(t, float64(len("%PDF-1.4 test")), got["size"])
	assert.Equal(t, "application/pdf", got["contentType"])
	assert.Equal(t, "%PDF-1.4 test", got["content"])
}

func TestPDFUpload_MediaTypeParameters(t *testing.T) {
	body, ct := multipartBody(t, "pdf", "report.pdf", "application/pdf; name=report.pdf", []byte("%PDF-"))

	w := doUpload(uploadEngine(testMaxBytes), body, ct)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPDFUpload_MissingFile(t *testing.T) {
	t.Run("no file part", func(t *testing.T) {
		body, ct := multipartBody(t, "", "", "", nil)

		w := doUpload(uploadEngine(testMaxBytes), body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No PDF file uploaded", decodeError(t, w).Error)
	})

	t.Run("wrong field name", func(t *testing.T) {
		body, ct := multipartBody(t, "file", "report.pdf", "application/pdf", []byte("%PDF-"))

		w := doUpload(uploadEngine(testMaxBytes), body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No PDF file uploaded", decodeError(t, w).Error)
	})

	t.Run("not multipart", func(t *testing.T) {
		w := doUpload(uploadEngine(testMaxBytes), bytes.NewBufferString(`{"a":1}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No PDF file uploaded", decodeError(t, w).Error)
	})
}

func TestPDFUpload_RejectsNonPDF(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
	}{
		{"plain text", "notes.txt", "text/plain"},
		{"pdf extension but image type", "scan.pdf", "image/png"},
		{"octet stream", "report.pdf", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, "pdf", tt.filename, tt.contentType, []byte("hello"))

			w := doUpload(uploadEngine(testMaxBytes), body, ct)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, MsgNotPDF, decodeError(t, w).Error)
		})
	}
}

func TestPDFUpload_TooLarge(t *testing.T) {
	t.Run("file over the ceiling", func(t *testing.T) {
		content := bytes.Repeat([]byte("a"), 2048+1)
		body, ct := multipartBody(t, "pdf", "big.pdf", "application/pdf", content)

		w := doUpload(uploadEngine(2048), body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, TooLargeMessage(2048), decodeError(t, w).Error)
	})

	t.Run("exactly at the ceiling", func(t *testing.T) {
		content := bytes.Repeat([]byte("a"), 2048)
		body, ct := multipartBody(t, "pdf", "big.pdf", "application/pdf", content)

		w := doUpload(uploadEngine(2048), body, ct)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("body over the read limit", func(t *testing.T) {
		content := bytes.Repeat([]byte("a"), multipartOverhead+4096)
		body, ct := multipartBody(t, "pdf", "huge.pdf", "application/pdf", content)

		w := doUpload(uploadEngine(2048), body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.HasPrefix(decodeError(t, w).Error, "File size too large"))
	})
}

func TestTooLargeMessage(t *testing.T) {
	assert.Equal(t, "File size too large. Maximum size is 10MB", TooLargeMessage(10<<20))
}
