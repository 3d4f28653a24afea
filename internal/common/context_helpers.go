// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetAccessToken returns the access token set by the access-token middleware,
// falling back to the raw header. A leading "Bearer " is tolerated.
func GetAccessToken(c *gin.Context) string {
	if val, ok := c.Get(AccessTokenKey); ok {
		if token, ok := val.(string); ok {
			return token
		}
	}
	return ParseAccessToken(c.GetHeader(AccessTokenHeader))
}

// ParseAccessToken trims the header value and strips an optional Bearer prefix.
func ParseAccessToken(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// LoggerFromContext returns the request-scoped logger, or fallback when none is attached.
func LoggerFromContext(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return fallback
}
