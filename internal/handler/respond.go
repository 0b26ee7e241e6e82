package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
	"gotmail/pkg/logger"
)

// ContextUserKey is where the auth middleware stores the resolved user.
const ContextUserKey = "user"

// writeError serves every failure with one envelope shape. Internal
// faults are logged with full detail and returned generic.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	if apperr.IsInternal(err) {
		logger.WithTrace(c.Request.Context(), log).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(apperr.StatusCode(err), gin.H{"error": apperr.PublicMessage(err)})
}

// currentUser returns the authenticated user set by the middleware.
func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}
