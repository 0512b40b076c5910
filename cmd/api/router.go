package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authDelivery "brf-backend/internal/auth/delivery"
	authUsecase "brf-backend/internal/auth/usecase"
	personDelivery "brf-backend/internal/person/delivery"
	"brf-backend/internal/stream"
	taskDelivery "brf-backend/internal/task/delivery"
)

// SetupRoutes wires the public board surface and the JWT-protected admin
// surface. Share links and device registration stay open: possession of a
// person id is the only access control the board has.
func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *authDelivery.AuthHandler,
	personHandler *personDelivery.PersonHandler,
	taskHandler *taskDelivery.TaskHandler,
	boardHandler *BoardHandler,
	sseManager *stream.Manager,
) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/auth/login", authHandler.Login)

		// Read-only board surface
		api.GET("/people", personHandler.List)
		api.GET("/tasks", taskHandler.List)
		api.GET("/tasks/:id", taskHandler.Get)
		api.GET("/week", boardHandler.Week)
		api.GET("/share/:personId", boardHandler.Share)

		// Live snapshot stream (full replacement on every change)
		api.GET("/events", func(c *gin.Context) {
			sseManager.ServeHTTP(c)
		})

		// Device tokens: registered from the share link, no auth
		api.POST("/devices", personHandler.RegisterDevice)
		api.DELETE("/devices/:token", personHandler.UnregisterDevice)

		// Admin surface
		admin := api.Group("")
		admin.Use(authDelivery.AdminMiddleware(authUc))
		{
			admin.POST("/people", personHandler.Create)
			admin.PUT("/people/:id", personHandler.Rename)
			admin.DELETE("/people/:id", personHandler.Delete)

			admin.POST("/tasks", taskHandler.Create)
			admin.PUT("/tasks/:id", taskHandler.Update)
			admin.DELETE("/tasks/:id", taskHandler.Delete)
		}
	}
}
