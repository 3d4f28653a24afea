// File: internal/moxfield/handler.go
package moxfield

import (
	"encoding/json"
	"net/http"

	"toski_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler proxies Moxfield lookups for the frontend.
type Handler struct {
	provider Provider
	logger   *zap.Logger
}

func NewHandler(provider Provider, logger *zap.Logger) *Handler {
	return &Handler{provider: provider, logger: logger.Named("MoxfieldHandler")}
}

// RegisterRoutes sets up the public /moxfield routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	moxfieldGroup := router.Group("/moxfield")
	{
		moxfieldGroup.GET("/profile/:id", h.getProfile)
		moxfieldGroup.GET("/deck/:id", h.getDeck)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	handle := c.Param("id")
	account, err := h.provider.GetAccount(c.Request.Context(), handle)
	if err != nil {
		h.logger.Info("Proxy account lookup failed", zap.String("handle", handle), zap.Error(err))
		common.RespondWithError(c, common.ErrInvalidExternalAccount.Wrap(err))
		return
	}
	h.writeRaw(c, account.Raw)
}

func (h *Handler) getDeck(c *gin.Context) {
	deckID := c.Param("id")
	deck, err := h.provider.GetDeck(c.Request.Context(), deckID)
	if err != nil {
		h.logger.Info("Proxy deck lookup failed", zap.String("deckID", deckID), zap.Error(err))
		common.RespondWithError(c, common.ErrDeckNotFound.Wrap(err))
		return
	}
	h.writeRaw(c, deck.Raw)
}

func (h *Handler) writeRaw(c *gin.Context, raw json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
