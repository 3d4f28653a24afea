// File: internal/common/response.go
package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RespondWithError sends a JSON error response for any error.
func RespondWithError(c *gin.Context, err error) {
	apiErr := ToAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger := LoggerFromContext(c, zap.NewNop())
		logger.Error("Request failed",
			zap.Error(err),
			zap.String("code", apiErr.Code),
			zap.String("path", c.Request.URL.Path),
		)
	}
	_ = c.Error(err).SetType(gin.ErrorTypePrivate)
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondBindingError answers a failed ShouldBindJSON.
func RespondBindingError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		apiErr := NewValidationAPIError(FormatValidationErrors(ve))
		c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
		return
	}
	apiErr := ToAPIError(ErrBadRequest.WithMessage("Request body must be valid JSON."))
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondOK sends a 200 with body encoded as-is.
func RespondOK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// RespondEmpty sends a 200 with an empty JSON object.
func RespondEmpty(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// RespondNoContent sends a 204 No Content response.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
