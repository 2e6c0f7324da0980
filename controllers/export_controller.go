package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/config"
	"github.com/vnkhanh/ai-course-backend/ws"
)

// ExportCourses trả file JSON chứa toàn bộ khóa học + user hiện tại
func ExportCourses(c *gin.Context) {
	data, err := config.Courses.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể export dữ liệu"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="courses-export.json"`)
	c.Data(http.StatusOK, "application/json", []byte(data))
}

// ImportCourses đọc file export và upsert từng khóa học hợp lệ.
// Khóa học lỗi bị bỏ qua và báo tên trong danh sách errors, cả đợt
// import vẫn thành công (partial success).
func ImportCourses(c *gin.Context) {
	var body []byte

	// Nhận file multipart hoặc JSON thẳng trong body
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không đọc được file import"})
			return
		}
		defer file.Close()
		body, err = io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không đọc được file import"})
			return
		}
	} else {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil || len(raw) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu dữ liệu import"})
			return
		}
		body = raw
	}

	imported, importErrors, err := config.Courses.Import(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if imported > 0 {
		ws.BroadcastCourseListChanged()
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Import hoàn tất",
		"imported": imported,
		"errors":   importErrors,
	})
}
