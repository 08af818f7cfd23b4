package main

import (
	"fmt"
	"os"

	"github.com/pendulab/pendulum-backend/internal/db"
	"github.com/pendulab/pendulum-backend/internal/handlers"
	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/middleware"
	"github.com/pendulab/pendulum-backend/internal/repos"
	"github.com/pendulab/pendulum-backend/internal/server"
	"github.com/pendulab/pendulum-backend/internal/services"
	"github.com/pendulab/pendulum-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	resultRepo := repos.NewResultRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	resultCache, err := services.NewRedisResultCache(log)
	if err != nil {
		log.Warn("Result cache disabled", "error", err)
		resultCache = nil
	}
	userService := services.NewUserService(thePG, log, userRepo)
	resultService := services.NewResultService(thePG, log, resultRepo, resultCache)
	orderService := services.NewOrderService(thePG, log, orderRepo, resultRepo)

	requireTotal := utils.GetEnvAsBool("ORDER_REQUIRE_TOTAL", false, log)
	orderValidator := services.NewOrderValidator(requireTotal)

	// Handlers
	log.Info("Setting up handlers...")
	orderHandler := handlers.NewOrderHandler(log, orderService, orderValidator)
	resultHandler := handlers.NewResultHandler(log, resultService)
	userHandler := handlers.NewUserHandler(log, userService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		RequestLogger: middleware.NewRequestLogger(log),
		OrderHandler:  orderHandler,
		ResultHandler: resultHandler,
		UserHandler:   userHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
