package main

import (
	"time"

	"go.uber.org/zap"

	"gotmail/config"
	"gotmail/internal/db"
	"gotmail/internal/mq"
	"gotmail/internal/mqhandler"
	"gotmail/internal/outbox"
	redisclient "gotmail/internal/redis"
	"gotmail/internal/repository"
	"gotmail/internal/util"
	"gotmail/pkg/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	zl := logger.NewLogger()
	defer zl.Sync()

	zl.Info("Starting worker service...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zl)
	if err != nil {
		zl.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	// Init repositories
	outboxRepo := outbox.NewRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)
	emailRepo := repository.NewEmailRepository(dbConn, outboxRepo)

	// Init handlers
	autoReplyHandler := mqhandler.NewEmailSentAutoReplyHandler(settingsRepo, emailRepo, deduper, zl)

	// Consumer for auto-replies
	zl.Info("Initializing auto-reply consumer", zap.String("queue", "email.sent.autoreply.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "email.sent.autoreply.q", mq.RoutingKeyEmailSent, zl)
	if err != nil {
		zl.Fatal("failed to init auto-reply consumer", zap.Error(err))
	}
	defer consumer.Close()
	consumer.SetHandler(autoReplyHandler.HandleEmailSent)

	go func() {
		zl.Info("Starting auto-reply consumer")
		if err := consumer.StartConsuming(); err != nil {
			zl.Fatal("auto-reply consumer failed", zap.Error(err))
		}
	}()

	zl.Info("All consumers started, worker is ready to process messages")

	// Keep worker running
	select {}
}
