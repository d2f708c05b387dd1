package membership

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts membership endpoints under a /companies/:companyId group.
func RegisterRoutes(company *gin.RouterGroup, handler *Handler) {
	memberships := company.Group("/memberships")
	{
		memberships.GET("", middleware.RateLimitByUser(5, 20), handler.List)
		memberships.GET("/me", middleware.RateLimitByUser(5, 20), handler.GetMe)
		memberships.PATCH("/:membershipId/role", middleware.RateLimitByUser(0.5, 2), handler.UpdateRole)
		memberships.DELETE("/:membershipId", middleware.RateLimitByUser(0.5, 2), handler.Remove)
	}
}
