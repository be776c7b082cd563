package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

// Recovery turns a panic anywhere in a request into a 500 carrying the
// panic message.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		msg := fmt.Sprint(recovered)
		if err, ok := recovered.(error); ok {
			msg = err.Error()
		}
		if msg == "" {
			msg = "Internal server error"
		}

		log.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.String("requestId", GetRequestID(c)),
			zap.Any("panic", recovered),
			zap.Stack("stack"))

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: msg})
	})
}
