package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courserank/backend/internal/app/controllers"
	"github.com/courserank/backend/internal/app/models/dto"
	"github.com/courserank/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	userController *controllers.UserController,
	comparisonController *controllers.ComparisonController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
	}

	// --- Public catalog routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.Search)
		courses.GET("/:id", courseController.GetByID)
		courses.GET("/:id/offerings", courseController.GetOfferings)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		me := authenticated.Group("/users/me")
		{
			me.GET("", userController.GetProfile)

			me.GET("/courses", userController.ListCourses)
			me.POST("/courses", userController.AddCourse)
			me.DELETE("/courses/:offeringId", userController.RemoveCourse)

			me.POST("/comparisons", comparisonController.Submit)
			me.GET("/comparisons", comparisonController.List)
			me.GET("/comparisons/next", comparisonController.NextPair)
			me.DELETE("/comparisons/latest", comparisonController.UndoLast)

			me.GET("/rankings", userController.GetRankings)
			me.GET("/suggestions", userController.GetSuggestions)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
