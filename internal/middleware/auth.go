// File: internal/middleware/auth.go
package middleware

import (
	"toski_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAccessToken rejects requests that carry no access-token header.
// Whether the token is valid, and whose it is, is decided later by the identity
// verifier because that needs the user id from the request body.
func RequireAccessToken(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := common.ParseAccessToken(c.GetHeader(common.AccessTokenHeader))
		if token == "" {
			logger.Debug("access-token header missing", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrMissingAccessToken)
			return
		}
		c.Set(common.AccessTokenKey, token)
		c.Next()
	}
}
