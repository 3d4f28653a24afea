// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"toski_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler answers requests whose handler recorded an error with c.Error
// but never wrote a response.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		if _, ok := common.AsError(last.Err); !ok {
			logger.Error("Unhandled application error",
				zap.Error(last.Err),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(common.RequestIDKey)),
			)
		}
		apiErr := common.ToAPIError(last.Err)
		c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
	}
}

// Recovery turns panics into a generic 500 without leaking the stack to the client.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(common.RequestIDKey)),
			zap.Stack("stack"),
		)
		apiErr := common.ToAPIError(common.ErrInternalServer)
		c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
	})
}

// NoRoute answers unknown paths in the same error shape as everything else.
func NoRoute(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, &common.APIError{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    "The requested endpoint does not exist.",
	})
}

// NoMethod answers known paths hit with the wrong method.
func NoMethod(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, &common.APIError{
		StatusCode: http.StatusMethodNotAllowed,
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "The method is not allowed for the requested URL.",
	})
}
