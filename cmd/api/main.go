package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"gotmail/config"
	"gotmail/internal/db"
	"gotmail/internal/handler"
	"gotmail/internal/httpserver"
	"gotmail/internal/mq"
	"gotmail/internal/outbox"
	redisclient "gotmail/internal/redis"
	"gotmail/internal/repository"
	"gotmail/internal/service/auth"
	"gotmail/internal/service/mailbox"
	"gotmail/internal/service/settings"
	"gotmail/internal/service/twofactor"
	"gotmail/internal/sms"
	"gotmail/pkg/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	zl := logger.NewLogger()
	defer zl.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zl)
	if err != nil {
		zl.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	if cfg.Uploads.Dir != "" {
		if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
			zl.Fatal("failed to create upload dir", zap.Error(err))
		}
	}

	// Init repositories
	outboxRepo := outbox.NewRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn, outboxRepo)
	sessionRepo := repository.NewSessionRepository(dbConn)
	profileRepo := repository.NewProfileRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)
	labelRepo := repository.NewLabelRepository(dbConn)
	emailRepo := repository.NewEmailRepository(dbConn, outboxRepo)

	// Init services
	authService := auth.NewService(userRepo, sessionRepo, cfg.SessionTTL())
	settingsService := settings.NewService(settingsRepo)
	mailboxService := mailbox.NewService(emailRepo, userRepo, labelRepo)
	codeStore := redisclient.NewCodeStore(rdb)
	smsSender := sms.NewBreakerSender(sms.NewLogSender(zl))
	twoFactorService := twofactor.NewService(codeStore, profileRepo, smsSender)

	// Init handlers
	authHandler := handler.NewAuthHandler(authService, zl)
	profileHandler := handler.NewProfileHandler(profileRepo, userRepo, cfg.Uploads.Dir, zl)
	settingsHandler := handler.NewSettingsHandler(settingsService, zl)
	emailHandler := handler.NewEmailHandler(mailboxService, cfg.Uploads.Dir, zl)
	twoFactorHandler := handler.NewTwoFactorHandler(twoFactorService, zl)

	// Outbox dispatcher drains domain events into the MQ.
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, zl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Start(ctx)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		profileHandler,
		settingsHandler,
		emailHandler,
		twoFactorHandler,
		authService,
		dbConn,
		zl,
	)

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		zl.Fatal("server start failed", zap.Error(err))
	}
}
