package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gotmail/internal/apperr"
	"gotmail/internal/service/twofactor"
)

type TwoFactorHandler struct {
	twoFactorService *twofactor.Service
	logger           *zap.Logger
}

func NewTwoFactorHandler(twoFactorService *twofactor.Service, logger *zap.Logger) *TwoFactorHandler {
	return &TwoFactorHandler{
		twoFactorService: twoFactorService,
		logger:           logger,
	}
}

// Setup handles POST /2fa/setup. The code is delivered out-of-band and
// never included in the response.
func (h *TwoFactorHandler) Setup(c *gin.Context) {
	user := currentUser(c)

	if err := h.twoFactorService.Setup(c.Request.Context(), user); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// Verify handles PUT /2fa/setup
func (h *TwoFactorHandler) Verify(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		VerificationCode string `json:"verification_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	if err := h.twoFactorService.Verify(c.Request.Context(), user, req.VerificationCode); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication enabled"})
}
