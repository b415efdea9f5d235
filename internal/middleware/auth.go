package middleware

import (
	"errors"
	"strings"

	"expense_tracker/internal/logger"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services"
	"expense_tracker/pkg/apperrors"
	"expense_tracker/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and reloads the user on every
// request, so suspension takes effect immediately. Requires DBMiddleware.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		val, _ := c.Get(string(contextkeys.DBContextKey))
		db, ok := val.(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("db missing from context")))
			return
		}

		user, err := authService.Authenticate(db, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(contextkeys.UserIDKey, user.ID)
		c.Set(contextkeys.RoleKey, user.Role)
		c.Set(contextkeys.UserKey, user)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// RoleMiddleware lets through only the listed roles.
func RoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !allowed[user.Role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(contextkeys.UserKey)
	if !exists {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}
