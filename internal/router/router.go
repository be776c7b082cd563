// Package router sets up all HTTP routes for the API.
package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/handlers"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/middleware"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

// Options carries the router settings that come from configuration.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	StaticDir      string
}

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, log *zap.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.Recovery(log),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPI)

	api := r.Group("/api")
	{
		upload := middleware.PDFUpload(handlers.UploadField, opts.MaxUploadBytes)
		api.POST("/upload-pdf", upload, h.UploadPDF)
		api.POST("/upload-pdf-and-search", upload, h.UploadPDFAndSearch)
		api.POST("/search", h.Search)
	}

	// The browser page and its assets. Served through NoRoute so the
	// file server never shadows an API route.
	if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
		static := gin.WrapH(http.FileServer(gin.Dir(opts.StaticDir, false)))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
				return
			}
			static(c)
		})
		log.Info("serving static files", zap.String("dir", opts.StaticDir))
	} else {
		log.Warn("static directory not found, browser page disabled", zap.String("dir", opts.StaticDir))
	}

	return r
}
