package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/ai-course-backend/models"
	"github.com/vnkhanh/ai-course-backend/utils"
)

func tokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthMiddleware bắt buộc có JWT hợp lệ, lưu user_id và role vào context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Thiếu Authorization header"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware không chặn request thiếu token: có token hợp lệ thì
// lấy user_id từ token, không thì dùng user mặc định (giống bản demo web).
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := models.DefaultUserID
		role := string(models.RoleUser)

		if token := tokenFromHeader(c); token != "" {
			if claims, err := utils.VerifyToken(token); err == nil {
				userID = claims.UserID
				role = claims.Role
			}
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}
