package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/config"
	"github.com/vnkhanh/ai-course-backend/storage"
)

// GetCourseProgress trả tiến độ của user hiện tại trên một khóa học.
// Chưa học gì thì progress là null, không phải lỗi.
func GetCourseProgress(c *gin.Context) {
	courseID := c.Param("courseId")
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, gin.H{"progress": config.Progress.Get(courseID, userID)})
}

// GetAllProgress trả toàn bộ tiến độ của user hiện tại
func GetAllProgress(c *gin.Context) {
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, gin.H{"progress": config.Progress.AllForUser(userID)})
}

// MarkChapterComplete đánh dấu một chương đã hoàn thành
func MarkChapterComplete(c *gin.Context) {
	courseID := c.Param("courseId")
	chapterID := c.Param("chapterId")
	userID := c.GetString("user_id")

	progress, err := config.Progress.MarkComplete(courseID, chapterID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu tiến độ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Đã đánh dấu hoàn thành chương",
		"progress": progress,
	})
}

// MarkChapterIncomplete bỏ đánh dấu hoàn thành một chương
func MarkChapterIncomplete(c *gin.Context) {
	courseID := c.Param("courseId")
	chapterID := c.Param("chapterId")
	userID := c.GetString("user_id")

	progress, err := config.Progress.MarkIncomplete(courseID, chapterID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrProgressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bản ghi tiến độ"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu tiến độ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Đã bỏ đánh dấu hoàn thành chương",
		"progress": progress,
	})
}
