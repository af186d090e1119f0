package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vulnspot_web/internal/utils"
)

// AdminAuthMiddleware 是一個 Gin 中間件，驗證管理員 session cookie
// 沒有有效 session 的請求一律回 401
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 從 cookie 中取出 session token
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		// 解析並驗證 token
		claims, err := utils.ParseAdminToken(token, []byte(secret))
		if err != nil || !claims.IsAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("isAdmin", true)
		c.Next() // 繼續處理請求
	}
}
