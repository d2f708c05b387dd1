package app

import (
	"context"
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/metrics"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, m *metrics.Metrics) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	router.GET("/healthz", healthHandler(sqlDB))
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.NoRoute(notFoundHandler)

	if err := registerModules(router, cfg, gormDB, redisClient, m, logger); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

func healthHandler(db pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Database unavailable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}

func notFoundHandler(c *gin.Context) {
	response.Error(c, apperror.ErrNotFound.HTTPStatus, apperror.ErrNotFound.Code, apperror.ErrNotFound.Message, nil)
}
