package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/config"
	"github.com/vnkhanh/ai-course-backend/services"
	"github.com/vnkhanh/ai-course-backend/utils"
)

// GenerateChapterNarration sinh audio đọc nội dung chương bằng TTS,
// upload lên Supabase rồi lưu URL + thời lượng vào chương
func GenerateChapterNarration(c *gin.Context) {
	courseID := c.Param("id")
	chapterID := c.Param("chapterId")

	course := config.Courses.Get(courseID)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	chapterIdx := -1
	for i, ch := range course.Chapters {
		if ch.ID == chapterID {
			chapterIdx = i
			break
		}
	}
	if chapterIdx == -1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chương"})
		return
	}

	var input struct {
		Voice string  `json:"voice"`
		Rate  float64 `json:"rate"`
	}
	// Body trống vẫn chạy với voice và rate mặc định
	_ = c.ShouldBindJSON(&input)

	chapter := &course.Chapters[chapterIdx]
	if chapter.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chương chưa có nội dung để đọc"})
		return
	}

	audio, err := services.SynthesizeChapterAudio(c.Request.Context(), chapter.Content, input.Voice, input.Rate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sinh audio thất bại"})
		return
	}

	// Ghi đè narration cũ nếu có
	if chapter.AudioURL != "" {
		_ = utils.DeleteFileFromSupabase(chapter.AudioURL)
	}

	filename := fmt.Sprintf("%s-%s.mp3", course.ID, chapter.ID)
	publicURL, err := utils.UploadBytesToSupabase(audio, filename, "audio/mpeg")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload audio thất bại"})
		return
	}

	duration, err := services.MP3Duration(audio)
	if err != nil {
		duration = 0
	}

	chapter.AudioURL = publicURL
	chapter.DurationSec = duration

	saved, err := config.Courses.Save(*course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Sinh narration thành công",
		"audioUrl":    publicURL,
		"durationSec": duration,
		"course":      saved,
	})
}
