package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/ai-course-backend/ws"
)

// HealthCheck kiểm tra kết nối database và trạng thái WebSocket hub
func HealthCheck(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	dbStatus := "ok"
	sqlDB, err := db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    dbStatus,
		"time":      time.Now(),
		"websocket": ws.H.GetStats(),
	})
}
