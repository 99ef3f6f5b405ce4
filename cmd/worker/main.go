package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramdanolii14/nyantube-sub000/internal/config"
	"github.com/ramdanolii14/nyantube-sub000/internal/infra/database"
	infraKafka "github.com/ramdanolii14/nyantube-sub000/internal/infra/kafka"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"go.uber.org/zap"
)

// The notification worker drains the notifications topic and materialises
// events into per-account inbox rows.
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(&model.Notification{}); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	notificationRepo := repository.NewNotificationRepository(database.Get())
	notificationService := service.NewNotificationService(notificationRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["notifications"]
	groupID := "nyantube-notification-worker"

	logger.Info("Notification worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartNotificationConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, notificationService.HandleEvent)
}
