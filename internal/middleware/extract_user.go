package middleware

import (
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractUserID re-publishes the authenticated user id as
// "user_id_validated" once it is known to be a UUID.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			abortWith(c, ErrInvalidToken)
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
