package main

import (
	"go-leave/internal/app"
	"go-leave/internal/bootstrap"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New("go-leave-api")
	r := gin.New()
	r.Use(gin.Recovery(), m.Middleware())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, m)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewStdoutAuditLogger(logger))
}
