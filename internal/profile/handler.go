// File: internal/profile/handler.go
package profile

import (
	"toski_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("ProfileHandler"),
	}
}

// RegisterRoutes sets up the profile and deck routes. tokenMW guards every write.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, tokenMW gin.HandlerFunc) {
	profileGroup := router.Group("/profiles")
	{
		profileGroup.GET("", h.listProfiles)
		profileGroup.GET("/:userId", h.getProfilesByUserID)
		profileGroup.POST("", tokenMW, h.upsertProfile)
		profileGroup.POST("/link", tokenMW, h.linkToskiID)
	}
	router.POST("/addDeck", tokenMW, h.addDeck)
	router.POST("/removeDeck", tokenMW, h.removeDeck)
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, profiles)
}

func (h *Handler) getProfilesByUserID(c *gin.Context) {
	profiles, err := h.service.ProfilesByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, profiles)
}

func (h *Handler) upsertProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Upsert profile: invalid request body", zap.Error(err))
		common.RespondBindingError(c, err)
		return
	}
	p, err := h.service.CreateOrUpdateProfile(c.Request.Context(), common.GetAccessToken(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, p)
}

func (h *Handler) linkToskiID(c *gin.Context) {
	var req LinkToskiIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Link toski id: invalid request body", zap.Error(err))
		common.RespondBindingError(c, err)
		return
	}
	p, err := h.service.LinkToskiID(c.Request.Context(), common.GetAccessToken(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, p)
}

func (h *Handler) addDeck(c *gin.Context) {
	var req AddDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Add deck: invalid request body", zap.Error(err))
		common.RespondBindingError(c, err)
		return
	}
	if err := h.service.AddDeck(c.Request.Context(), common.GetAccessToken(c), req); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondEmpty(c)
}

func (h *Handler) removeDeck(c *gin.Context) {
	var req RemoveDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Remove deck: invalid request body", zap.Error(err))
		common.RespondBindingError(c, err)
		return
	}
	if err := h.service.RemoveDeck(c.Request.Context(), common.GetAccessToken(c), req); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondEmpty(c)
}
