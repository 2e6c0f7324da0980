package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/config"
	"github.com/vnkhanh/ai-course-backend/models"
	"github.com/vnkhanh/ai-course-backend/ws"
)

type GenerateCourseInput struct {
	models.CourseGenerationRequest
	JobID         string `json:"job_id"`         // optional, để theo dõi tiến trình qua WebSocket
	ReferenceText string `json:"reference_text"` // optional, văn bản từ tài liệu upload
}

// GenerateCourse chạy pipeline sinh khóa học đầy đủ và lưu kết quả.
// Lỗi gọi Gemini/YouTube không trả về client, pipeline tự fallback.
func GenerateCourse(c *gin.Context) {
	var input GenerateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate trước để phân biệt lỗi input (400) với lỗi lưu trữ (500)
	if err := input.CourseGenerationRequest.Normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	ws.SendGenerationUpdate(input.JobID, "started", 0, "", "")

	course, err := config.Generator.Generate(c.Request.Context(), input.CourseGenerationRequest, userID, input.ReferenceText)
	if err != nil {
		ws.SendGenerationUpdate(input.JobID, "failed", 0, "", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu khóa học"})
		return
	}

	ws.SendGenerationUpdate(input.JobID, "saved", 100, course.ID, "")
	ws.BroadcastCourseListChanged()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo khóa học thành công",
		"course":  course,
	})
}
