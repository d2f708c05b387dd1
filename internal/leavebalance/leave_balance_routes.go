package leavebalance

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(company *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	member := company.Group("/memberships/:membershipId")
	{
		member.GET("/leave-balances", middleware.RateLimitByUser(5, 20), handler.GetBalances)
		member.GET("/leave-balance-history", middleware.RateLimitByUser(5, 20), handler.GetHistory)
		member.PUT("/leave-balances",
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			handler.UpdateLeaveBalances,
		)
	}

	// Crediting a whole company is rare and must not run twice.
	company.POST("/leave-balances/annual-allocation",
		middleware.RateLimitByUser(0.1, 1),
		middleware.Idempotency(rdb),
		handler.AllocateAnnualLeave,
	)
}
