package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/events"
	"go-leave/internal/membership"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)
	membershipRepo := membership.NewRepository(gormDB)
	membershipService := membership.NewService(
		gormDB,
		membershipRepo,
		membership.NewAuthorizer(membershipRepo, rbacService, logger),
		rbacService,
		rdb,
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveReviewedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	m := metrics.New("go-leave-consumer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeLeaveReviewed(ctx, reader, membershipService, m, logger)

	logger.Info("consumer shutting down")
	return nil
}
