package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pendulab/pendulum-backend/internal/handlers"
	"github.com/pendulab/pendulum-backend/internal/middleware"
)

type RouterConfig struct {
	RequestLogger *middleware.RequestLogger
	OrderHandler  *handlers.OrderHandler
	ResultHandler *handlers.ResultHandler
	UserHandler   *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Handle())
	}

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	v1 := router.Group("/v1")
	{
		// Orders
		v1.POST("/orders", cfg.OrderHandler.Create)
		v1.GET("/orders", cfg.OrderHandler.List)
		v1.GET("/orders/:id", cfg.OrderHandler.Get)
		v1.PATCH("/orders/:id", cfg.OrderHandler.Update)
		v1.DELETE("/orders/:id", cfg.OrderHandler.Delete)
		// Results
		v1.POST("/results", cfg.ResultHandler.Create)
		v1.GET("/results", cfg.ResultHandler.List)
		v1.GET("/results/:id", cfg.ResultHandler.Get)
		v1.PATCH("/results/:id", cfg.ResultHandler.Update)
		v1.DELETE("/results/:id", cfg.ResultHandler.Delete)
		// Users
		v1.POST("/users", cfg.UserHandler.Create)
		v1.GET("/users", cfg.UserHandler.List)
		v1.GET("/users/:id", cfg.UserHandler.Get)
		v1.PATCH("/users/:id", cfg.UserHandler.Update)
		v1.DELETE("/users/:id", cfg.UserHandler.Delete)
	}

	return router
}
