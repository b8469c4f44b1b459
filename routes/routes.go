package routes

import (
	"Sahada/controllers"
	"Sahada/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/users/register", controllers.Register(db))

	api.POST("/users/login", controllers.Login(db))

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.GET("/sessions", controllers.GetAllSessions(db))

	// Routes that require authentication
	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired)
	{
		authenticated.POST("/sessions", controllers.CreateSession(db))

		authenticated.DELETE("/sessions/:session_id", controllers.DeleteSession(db))

		authenticated.PUT("/sessions/:session_id", controllers.LeaveSession(db))

		authenticated.POST("/sessions/:session_id", controllers.JoinSession(db))
	}
}
