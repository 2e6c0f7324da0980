package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/ai-course-backend/config"
	"github.com/vnkhanh/ai-course-backend/models"
	"github.com/vnkhanh/ai-course-backend/services"
	"github.com/vnkhanh/ai-course-backend/utils"
	"github.com/vnkhanh/ai-course-backend/ws"
)

// GetCourses trả toàn bộ khóa học trong storage
func GetCourses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"courses": config.Courses.GetAll()})
}

// GetCourseDetail trả một khóa học kèm tiến độ của user hiện tại
func GetCourseDetail(c *gin.Context) {
	id := c.Param("id")
	course := config.Courses.Get(id)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	userID := c.GetString("user_id")
	progress := config.Progress.Get(id, userID)

	c.JSON(http.StatusOK, gin.H{
		"course":   course,
		"progress": progress,
	})
}

// GetChapters trả danh sách chương của một khóa học
func GetChapters(c *gin.Context) {
	id := c.Param("id")
	if config.Courses.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": config.Courses.GetChapters(id)})
}

// UpdateCourse cập nhật các trường mô tả, chỉ ghi đè trường có giá trị
func UpdateCourse(c *gin.Context) {
	id := c.Param("id")
	course := config.Courses.Get(id)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	var input struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		Category       string `json:"category"`
		Topic          string `json:"topic"`
		TargetAudience string `json:"targetAudience"`
		Difficulty     string `json:"difficulty"`
		Duration       int    `json:"duration"`
		ImageURL       string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Topic != "" {
		course.Topic = input.Topic
	}
	if input.TargetAudience != "" {
		course.TargetAudience = input.TargetAudience
	}
	if input.Difficulty != "" {
		switch input.Difficulty {
		case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
			course.Difficulty = input.Difficulty
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidDifficulty.Error()})
			return
		}
	}
	if input.Duration > 0 {
		course.Duration = input.Duration
	}
	if input.ImageURL != "" {
		course.ImageURL = input.ImageURL
	}

	saved, err := config.Courses.Save(*course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật khóa học thành công",
		"course":  saved,
	})
}

// DeleteCourse xóa theo id, id không tồn tại trả 404 chứ không lỗi server
func DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	if !config.Courses.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học", "deleted": false})
		return
	}

	ws.BroadcastCourseListChanged()
	c.JSON(http.StatusOK, gin.H{
		"message": "Xóa khóa học thành công",
		"deleted": true,
	})
}

// AddChapter thêm một chương mới vào cuối khóa học
func AddChapter(c *gin.Context) {
	id := c.Param("id")
	course := config.Courses.Get(id)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Content     string   `json:"content"`
		VideoURL    string   `json:"videoUrl"`
		Objectives  []string `json:"objectives"`
		Exercises   []string `json:"exercises"`
		Duration    string   `json:"duration"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videoURL := input.VideoURL
	if videoURL == "" {
		videoURL = services.FallbackVideoURL(course.Topic)
	}

	chapter := models.Chapter{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		VideoURL:    videoURL,
		Objectives:  input.Objectives,
		Exercises:   input.Exercises,
		Duration:    input.Duration,
		Order:       len(course.Chapters) + 1,
		CourseID:    course.ID,
	}
	chapter.Backfill()

	course.Chapters = append(course.Chapters, chapter)
	saved, err := config.Courses.Save(*course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu khóa học"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thêm chương thành công",
		"chapter": chapter,
		"course":  saved,
	})
}

// SearchCourses tìm theo chuỗi con, không phân biệt hoa thường
func SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query không được để trống"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": config.Courses.Search(query)})
}

// GetCoursesByCategory lọc theo category, so khớp chính xác
func GetCoursesByCategory(c *gin.Context) {
	category := c.Param("category")
	c.JSON(http.StatusOK, gin.H{"courses": config.Courses.ByCategory(category)})
}

// GetRecentCourses trả các khóa học tạo gần nhất
func GetRecentCourses(c *gin.Context) {
	limit := 5
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}
	c.JSON(http.StatusOK, gin.H{"courses": config.Courses.Recent(limit)})
}

// UploadCourseCover upload ảnh bìa lên Supabase và gán vào khóa học
func UploadCourseCover(c *gin.Context) {
	id := c.Param("id")
	course := config.Courses.Get(id)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu file ảnh"})
		return
	}

	publicURL, err := utils.UploadImageToSupabase(fileHeader, course.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload ảnh thất bại"})
		return
	}

	course.ImageURL = publicURL
	saved, err := config.Courses.Save(*course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Upload ảnh bìa thành công",
		"imageUrl": publicURL,
		"course":   saved,
	})
}
