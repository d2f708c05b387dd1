package app

import (
	"go-leave/internal/company"
	"go-leave/internal/leave"
	"go-leave/internal/leavebalance"
	"go-leave/internal/membership"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	membershipRepo := membership.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)
	authorizer := membership.NewAuthorizer(membershipRepo, rbacService, logger)

	// --- Services ---
	ledger := leavebalance.NewLedger(gormDB, balanceRepo, cfg.Leave.MaxBalanceChange, logger)
	companyService := company.NewService(companyRepo, authorizer, logger)
	membershipService := membership.NewService(gormDB, membershipRepo, authorizer, rbacService, rdb, logger)
	balanceService := leavebalance.NewService(leavebalance.ServiceDeps{
		DB:         gormDB,
		Repo:       balanceRepo,
		Ledger:     ledger,
		Authorizer: authorizer,
		Companies:  companyRepo,
		Outbox:     outboxRepo,
		Metrics:    m,
		MaxChange:  cfg.Leave.MaxBalanceChange,
	}, logger)
	leaveService := leave.NewService(leave.ServiceDeps{
		DB:         gormDB,
		Repo:       leaveRepo,
		Ledger:     ledger,
		Authorizer: authorizer,
		Outbox:     outboxRepo,
		Metrics:    m,
	}, logger)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, logger)
	membershipHandler := membership.NewHandler(membershipService, logger)
	balanceHandler := leavebalance.NewHandler(balanceService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(apiMiddlewares(cfg.Auth, logger)...)

	companies := api.Group("/companies/:companyId")
	{
		company.RegisterRoutes(companies, companyHandler)
		membership.RegisterRoutes(companies, membershipHandler)
		leavebalance.RegisterRoutes(companies, balanceHandler, rdb)
		leave.RegisterRoutes(companies, leaveHandler, rdb)
	}

	return nil
}

// apiMiddlewares is the chain every /api/v1 route runs through. RequestID
// comes first so rejected requests carry an id too.
func apiMiddlewares(auth config.AuthConfig, logger *zap.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.RateLimitByIP(20, 40),
		middleware.AuthMiddleware(auth.JWTSecret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
	}
}
