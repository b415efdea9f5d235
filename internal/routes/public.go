package routes

import (
	_ "expense_tracker/docs"
	"expense_tracker/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupPublicRoutes registers routes that need no authentication.
func SetupPublicRoutes(rg *gin.RouterGroup, appHandlers *handlers.AppHandlers) {
	appHandlers.HealthHandler.RegisterRoutes(rg)
	rg.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
