package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(company *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := company.Group("/memberships/:membershipId/leaves")
	{
		leaves.GET("", middleware.RateLimitByUser(5, 20), handler.GetLeaves)
		leaves.POST("", middleware.RateLimitByUser(1, 5), middleware.Idempotency(rdb), handler.CreateLeave)
		leaves.GET("/:leaveId", middleware.RateLimitByUser(5, 20), handler.GetLeave)
		leaves.PATCH("/:leaveId", middleware.RateLimitByUser(1, 5), handler.UpdateLeave)
		leaves.DELETE("/:leaveId", middleware.RateLimitByUser(1, 5), handler.DeleteLeave)
	}

	company.GET("/leaves", middleware.RateLimitByUser(5, 20), handler.GetCompanyLeaves)
	company.POST("/leaves/:leaveId/review", middleware.RateLimitByUser(2, 10), middleware.Idempotency(rdb), handler.ReviewLeave)
}
