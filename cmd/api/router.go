package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/pkg/container"
)

// SetupRouter wires middlewares and routes onto a fresh gin engine.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(c.Config.JWT.Secret), c.UserHandler.Logout)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
// All catalog endpoints require a logged-in user: listings carry the
// per-user favourite flag, and favourites/reviews write on their behalf.
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		books.GET("", c.CatalogHandler.ListBooks)
		books.GET("/:id", c.CatalogHandler.GetBookDetail)
		books.POST("/favourites", c.CatalogHandler.AddToFavourite)
		books.POST("/reviews", c.CatalogHandler.CreateReview)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.HealthCheck(c.Request.Context()); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
