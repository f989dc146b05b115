package handlers

import (
	"net/http"

	"matehub/models"
	"matehub/services/mate"
	"matehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MateHandler serves a mate's own profile.
type MateHandler struct {
	Service mate.MateService
	Logger  *zap.Logger
}

// GetOwnProfileHandler handles GET /mate/me.
func (h *MateHandler) GetOwnProfileHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	m, err := h.Service.GetOwnProfile(c.Request.Context(), who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateOwnProfileHandler handles PUT /mate/me.
func (h *MateHandler) UpdateOwnProfileHandler(c *gin.Context) {
	who, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req models.MateProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile", err.Error())
		return
	}
	m, err := h.Service.UpdateOwnProfile(c.Request.Context(), who, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "mate": m})
}
