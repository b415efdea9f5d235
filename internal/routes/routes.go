package routes

import (
	"expense_tracker/internal/handlers"
	"expense_tracker/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route at the root of ginRouter. authMW is
// the bearer-token middleware used by protected groups.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	root := ginRouter.Group("")

	SetupPublicRoutes(root, appHandlers)

	appHandlers.AuthHandler.RegisterRoutes(root, authMW)
	appHandlers.TicketHandler.RegisterRoutes(root, authMW)
	appHandlers.EmployeeHandler.RegisterRoutes(root, authMW)

	logger.Debug("routes registered", "count", len(ginRouter.Routes()))
}
