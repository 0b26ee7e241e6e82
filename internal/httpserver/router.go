package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gotmail/internal/handler"
	"gotmail/internal/service/auth"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	settingsHandler *handler.SettingsHandler,
	emailHandler *handler.EmailHandler,
	twoFactorHandler *handler.TwoFactorHandler,
	authService *auth.Service,
	db *pgxpool.Pool,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), TraceMiddleware(), MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public; the credential endpoints are rate limited per IP.
	limited := r.Group("/")
	limited.Use(RateLimitMiddleware(10, time.Minute, logger))
	{
		limited.POST("/register", authHandler.Register)
		limited.POST("/login", authHandler.Login)
	}
	r.POST("/logout", authHandler.Logout)
	r.POST("/validate-token", authHandler.ValidateToken)

	// Protected
	authed := r.Group("/")
	authed.Use(AuthMiddleware(authService))
	{
		authed.POST("/change-password", authHandler.ChangePassword)

		authed.GET("/profile", profileHandler.Get)
		authed.PUT("/profile", profileHandler.Update)
		authed.DELETE("/profile", profileHandler.Delete)

		authed.GET("/settings/auto-reply", settingsHandler.GetAutoReply)
		authed.PUT("/settings/auto-reply", settingsHandler.UpdateAutoReply)
		authed.PATCH("/settings/auto-reply", settingsHandler.ToggleAutoReply)

		authed.GET("/settings/font", settingsHandler.GetFont)
		authed.PUT("/settings/font", settingsHandler.UpdateFont)

		authed.GET("/settings/dark-mode", settingsHandler.GetDarkMode)
		authed.PATCH("/settings/dark-mode", settingsHandler.SetDarkMode)

		authed.GET("/labels", emailHandler.ListLabels)

		authed.POST("/emails/send", emailHandler.Send)
		authed.GET("/emails/search", emailHandler.Search)
		authed.PUT("/emails/:id/flags", emailHandler.UpdateFlags)

		authed.POST("/2fa/setup", twoFactorHandler.Setup)
		authed.PUT("/2fa/setup", twoFactorHandler.Verify)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
