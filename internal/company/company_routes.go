package company

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts company endpoints on a /companies/:companyId group.
func RegisterRoutes(company *gin.RouterGroup, handler *Handler) {
	// Dashboards poll this one.
	company.GET("", middleware.RateLimitByUser(2, 10), handler.GetByID)

	company.PATCH("", middleware.RateLimitByUser(0.1, 1), handler.Update)
}
