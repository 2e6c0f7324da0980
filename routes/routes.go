package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/ai-course-backend/controllers"
	"github.com/vnkhanh/ai-course-backend/middleware"
	"github.com/vnkhanh/ai-course-backend/ws"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", middleware.DBMiddleware(db), controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	courses := api.Group("/courses")
	{
		courses.Use(middleware.OptionalAuthMiddleware(), middleware.DBMiddleware(db))

		courses.POST("/generate", controllers.GenerateCourse)

		courses.GET("", controllers.GetCourses)
		courses.GET("/search", controllers.SearchCourses)
		courses.GET("/recent", controllers.GetRecentCourses)
		courses.GET("/category/:category", controllers.GetCoursesByCategory)
		courses.GET("/:id", controllers.GetCourseDetail)
		courses.PUT("/:id", controllers.UpdateCourse)
		courses.DELETE("/:id", controllers.DeleteCourse)

		courses.GET("/:id/chapters", controllers.GetChapters)
		courses.POST("/:id/chapters", controllers.AddChapter)
		courses.POST("/:id/cover", controllers.UploadCourseCover)
		courses.POST("/:id/chapters/:chapterId/narration", controllers.GenerateChapterNarration)
	}

	progress := api.Group("/progress")
	{
		progress.Use(middleware.OptionalAuthMiddleware(), middleware.DBMiddleware(db))

		progress.GET("", controllers.GetAllProgress)
		progress.GET("/:courseId", controllers.GetCourseProgress)
		progress.POST("/:courseId/chapters/:chapterId/complete", controllers.MarkChapterComplete)
		progress.DELETE("/:courseId/chapters/:chapterId/complete", controllers.MarkChapterIncomplete)
	}

	api.GET("/stats", middleware.OptionalAuthMiddleware(), controllers.GetStats)
	api.GET("/categories", middleware.DBMiddleware(db), controllers.GetCategories)
	api.GET("/export", middleware.OptionalAuthMiddleware(), controllers.ExportCourses)
	api.POST("/import", middleware.OptionalAuthMiddleware(), controllers.ImportCourses)
	api.POST("/documents/extract", middleware.OptionalAuthMiddleware(), controllers.ExtractDocument)

	// WebSocket theo dõi tiến trình sinh khóa học
	r.GET("/ws/generation/:id", ws.HandleGenerationWebSocket)
	r.GET("/ws/global", ws.HandleGlobalWebSocket)

	return r
}
