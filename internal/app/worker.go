package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-leave/internal/membership"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const onLeaveSweepInterval = 15 * time.Minute

// OnLeaveSweeper is the part of the membership service the worker drives.
type OnLeaveSweeper interface {
	SyncOnLeaveFlags(ctx context.Context, day time.Time) (int64, error)
}

func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	m := metrics.New("go-leave-worker")
	outboxRepo := kafka.NewOutboxRepository(gormDB)

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
		nil,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		producer.ProcessOutboxEvents(gctx, outboxRepo, kafkaWriter, m, logger, cfg.Kafka.PollInterval)
		return nil
	})
	g.Go(func() error {
		runOnLeaveSweep(gctx, membershipService, logger, onLeaveSweepInterval)
		return nil
	})

	err = g.Wait()
	logger.Info("worker shutting down")
	return err
}

func runOnLeaveSweep(ctx context.Context, sweeper OnLeaveSweeper, logger *zap.Logger, interval time.Duration) {
	log := logger.Named("on_leave_sweep")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweep := func() {
		if _, err := sweeper.SyncOnLeaveFlags(ctx, time.Now().UTC()); err != nil && ctx.Err() == nil {
			log.Error("on leave sweep failed", zap.Error(err))
		}
	}

	sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
