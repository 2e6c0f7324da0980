package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/config"
)

// GetStats tổng hợp số liệu toàn bộ khóa học, quét lại collection mỗi lần gọi
func GetStats(c *gin.Context) {
	stats := config.Courses.Stats()

	// Danh mục phổ biến kèm phần trăm cho dashboard
	type popularCategory struct {
		Name       string `json:"name"`
		Count      int    `json:"count"`
		Percentage int    `json:"percentage"`
	}
	popular := []popularCategory{}
	for name, count := range stats.CategoryBreakdown {
		pct := 0
		if stats.TotalCourses > 0 {
			pct = int(math.Round(float64(count) / float64(stats.TotalCourses) * 100))
		}
		popular = append(popular, popularCategory{Name: name, Count: count, Percentage: pct})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCourses":      stats.TotalCourses,
		"totalChapters":     stats.TotalChapters,
		"totalDuration":     stats.TotalDuration,
		"categoriesCount":   stats.CategoriesCount,
		"recentCourses":     stats.RecentCourses,
		"categoryBreakdown": stats.CategoryBreakdown,
		"popularCategories": popular,
	})
}
