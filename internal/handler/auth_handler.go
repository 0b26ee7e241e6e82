package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gotmail/internal/apperr"
	"gotmail/internal/service/auth"
	"gotmail/pkg/metrics"
)

type AuthHandler struct {
	authService *auth.Service
	logger      *zap.Logger
}

func NewAuthHandler(authService *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
		Password    string `json:"password" binding:"required,min=8"`
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), auth.RegisterInput{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
	})
	if err != nil {
		metrics.IncrementAuthAttempt("register", "failure")
		writeError(c, h.logger, err)
		return
	}

	metrics.IncrementAuthAttempt("register", "success")
	c.JSON(http.StatusCreated, gin.H{
		"user":          user,
		"session_token": token,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		metrics.IncrementAuthAttempt("login", "failure")
		writeError(c, h.logger, err)
		return
	}

	metrics.IncrementAuthAttempt("login", "success")
	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"session_token": token,
	})
}

// Logout handles POST /logout. The token may arrive in the body or the
// Authorization header; logout always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		SessionToken string `json:"session_token"`
	}
	_ = c.ShouldBindJSON(&req)

	token := req.SessionToken
	if token == "" {
		token = c.GetHeader("Authorization")
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		writeError(c, h.logger, err)
		return
	}

	metrics.IncrementAuthAttempt("logout", "success")
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// ValidateToken handles POST /validate-token
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req struct {
		SessionToken string `json:"session_token"`
	}
	_ = c.ShouldBindJSON(&req)

	user, err := h.authService.ValidateToken(c.Request.Context(), req.SessionToken)
	if err != nil {
		metrics.IncrementAuthAttempt("validate", "failure")
		writeError(c, h.logger, err)
		return
	}

	metrics.IncrementAuthAttempt("validate", "success")
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Token is valid",
	})
}

// ChangePassword handles POST /change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	currentToken := c.GetHeader("Authorization")
	err := h.authService.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword, currentToken)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}
