package handlers

import (
	"net/http"

	"matehub/middleware"
	"matehub/models"
	"matehub/services/booking"
	"matehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handlerLogger falls back to the process logger when none was injected.
func handlerLogger(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return utils.GetLogger()
}

// callerIdentity reads the authenticated caller or aborts with 401.
func callerIdentity(c *gin.Context) (models.Identity, bool) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return models.Identity{}, false
	}
	return who, true
}

// respondError writes a classified service error. Server-side causes are
// logged and never echoed.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, message := booking.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		handlerLogger(logger).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	utils.JSONError(c, status, message, "")
}
