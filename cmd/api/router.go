package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sportify-backend/internal/shared/middleware"
	"sportify-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares; CORS also answers OPTIONS for any path.
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	setupFunctionRoutes(router, c)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
	}

	return router
}

// ========================================
// FUNCTION ROUTES
// ========================================
func setupFunctionRoutes(router *gin.Engine, c *container.Container) {
	fn := router.Group("/functions/v1")
	{
		fn.POST("/create-razorpay-order", c.PaymentHandler.CreateOrder)
		fn.POST("/verify-razorpay-payment", c.PaymentHandler.VerifyPayment)
		fn.POST("/create-user", c.UserHandler.CreateUser)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := gin.H{}
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check cache
		if err := appCtx.Cache.Ping(ctx); err != nil {
			services["cache"] = gin.H{"status": "error", "kind": appCtx.CacheKind, "error": err.Error()}
			health["status"] = "degraded"
		} else {
			services["cache"] = gin.H{"status": "ok", "kind": appCtx.CacheKind}
		}

		// Check database
		switch {
		case appCtx.DB == nil:
			services["database"] = gin.H{"status": "disabled"}
		case appCtx.DB.HealthCheck(ctx) != nil:
			services["database"] = gin.H{"status": "error"}
			health["status"] = "degraded"
		default:
			db := gin.H{"status": "ok"}
			if stats, err := appCtx.DB.Stats(); err == nil {
				db["pool"] = stats
			}
			services["database"] = db
		}

		services["gateway"] = configured(appCtx.Gateway != nil)
		services["provisioning"] = configured(appCtx.AuthAdmin != nil && appCtx.ProfileRepo != nil)

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}

func configured(ok bool) gin.H {
	if ok {
		return gin.H{"status": "configured"}
	}
	return gin.H{"status": "missing"}
}
