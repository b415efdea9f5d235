package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"expense_tracker/database"
	"expense_tracker/internal/auth"
	"expense_tracker/internal/config"
	"expense_tracker/internal/email"
	"expense_tracker/internal/handlers"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/middleware"
	"expense_tracker/internal/routes"
	"expense_tracker/internal/services"
	"expense_tracker/internal/telemetry"
	"expense_tracker/internal/validator"
	"expense_tracker/internal/workers"
	"expense_tracker/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Run starts the API server and blocks until SIGINT/SIGTERM.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, cfg.Telemetry)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Database connected")

	provider := email.NewProvider(email.ConfigFrom(cfg.Email), cfg.Email.Enabled)
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, decision notices are kept in memory")
	}
	worker := workers.NewNotificationWorker(provider, cfg.Email.QueueSize)
	worker.Start(ctx)

	router := SetupRouter(cfg, gormDB, worker)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           otelhttp.NewHandler(router, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	worker.Wait()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Database close failed", "error", err)
	}
}

// SetupRouter builds the gin engine with every middleware and route.
// notifier may be nil.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, notifier services.Notifier) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.IsDevelopment())

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTLDuration())
	serviceContainer := services.NewServiceContainer(tokens, notifier)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(serviceContainer.AuthService))

	return ginRouter
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		HealthHandler:   handlers.NewHealthHandler(baseHandler),
		AuthHandler:     handlers.NewAuthHandler(baseHandler, services.AuthService),
		TicketHandler:   handlers.NewTicketHandler(baseHandler, services.TicketService),
		EmployeeHandler: handlers.NewEmployeeHandler(baseHandler, services.EmployeeService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
