package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/services"
)

// ExtractDocument nhận file tài liệu (pdf, docx, txt) và trả về văn bản
// đã trích xuất để đưa vào prompt sinh khóa học
func ExtractDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu file tài liệu"})
		return
	}

	text, err := services.ExtractReferenceText(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": fileHeader.Filename,
		"text":     text,
		"length":   len(text),
	})
}
