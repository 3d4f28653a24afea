// File: internal/match/handler.go
package match

import (
	"toski_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves match submissions.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("MatchHandler")}
}

// RegisterRoutes sets up POST /matches.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/matches", h.submitMatch)
}

func (h *Handler) submitMatch(c *gin.Context) {
	var req SubmitMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Submit match: invalid request body", zap.Error(err))
		common.RespondBindingError(c, err)
		return
	}
	if err := h.service.SubmitMatch(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
