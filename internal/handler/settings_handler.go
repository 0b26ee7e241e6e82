package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
	"gotmail/internal/service/settings"
)

type SettingsHandler struct {
	settingsService *settings.Service
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *settings.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

func autoReplyResponse(s *model.UserSettings) gin.H {
	return gin.H{
		"auto_reply_enabled":    s.AutoReplyEnabled,
		"auto_reply_start_date": s.AutoReplyStartDate,
		"auto_reply_end_date":   s.AutoReplyEndDate,
		"auto_reply_message":    s.AutoReplyMessage,
	}
}

// GetAutoReply handles GET /settings/auto-reply
func (h *SettingsHandler) GetAutoReply(c *gin.Context) {
	user := currentUser(c)

	s, err := h.settingsService.Get(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, autoReplyResponse(s))
}

// UpdateAutoReply handles PUT /settings/auto-reply
func (h *SettingsHandler) UpdateAutoReply(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Enabled   *bool      `json:"auto_reply_enabled"`
		StartDate *time.Time `json:"auto_reply_start_date"`
		EndDate   *time.Time `json:"auto_reply_end_date"`
		Message   *string    `json:"auto_reply_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	s, err := h.settingsService.UpdateAutoReply(c.Request.Context(), user.ID, settings.AutoReplyUpdate{
		Enabled:   req.Enabled,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Message:   req.Message,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, autoReplyResponse(s))
}

// ToggleAutoReply handles PATCH /settings/auto-reply
func (h *SettingsHandler) ToggleAutoReply(c *gin.Context) {
	user := currentUser(c)

	s, err := h.settingsService.ToggleAutoReply(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, autoReplyResponse(s))
}

// GetFont handles GET /settings/font
func (h *SettingsHandler) GetFont(c *gin.Context) {
	user := currentUser(c)

	s, err := h.settingsService.Get(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"font_family": s.FontFamily,
		"font_size":   s.FontSize,
	})
}

// UpdateFont handles PUT /settings/font
func (h *SettingsHandler) UpdateFont(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		FontFamily *string `json:"font_family"`
		FontSize   *int    `json:"font_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	s, err := h.settingsService.UpdateFont(c.Request.Context(), user.ID, req.FontFamily, req.FontSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"font_family": s.FontFamily,
		"font_size":   s.FontSize,
	})
}

// GetDarkMode handles GET /settings/dark-mode
func (h *SettingsHandler) GetDarkMode(c *gin.Context) {
	user := currentUser(c)

	s, err := h.settingsService.Get(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dark_mode": s.DarkMode})
}

// SetDarkMode handles PATCH /settings/dark-mode. The field is required;
// a toggle-by-omission would make retries unsafe.
func (h *SettingsHandler) SetDarkMode(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		DarkMode *bool `json:"dark_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}
	if req.DarkMode == nil {
		writeError(c, h.logger, apperr.Validation("dark_mode field is required"))
		return
	}

	s, err := h.settingsService.SetDarkMode(c.Request.Context(), user.ID, *req.DarkMode)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dark_mode": s.DarkMode})
}
