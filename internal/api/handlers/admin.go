package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vulnspot_web/internal/service"
	"vulnspot_web/internal/utils"
)

// AdminHandler 處理管理員登入、題目鎖定與比賽重置
type AdminHandler struct {
	adminService     *service.AdminService
	challengeService *service.ChallengeService
	wsManager        *service.WebSocketManager
	sessionSecret    string
}

// NewAdminHandler 創建一個新的 AdminHandler 實例
func NewAdminHandler(adminService *service.AdminService, challengeService *service.ChallengeService, wsManager *service.WebSocketManager, sessionSecret string) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		challengeService: challengeService,
		wsManager:        wsManager,
		sessionSecret:    sessionSecret,
	}
}

// LoginInput 定義管理員登入請求的結構
type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// Login 處理管理員登入
// 密碼正確時簽發 session token 並寫入 cookie
func (h *AdminHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing password"})
		return
	}

	if !h.adminService.VerifyPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Incorrect password"})
		return
	}

	token, err := utils.GenerateAdminToken([]byte(h.sessionSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "獲取token失敗"})
		return
	}

	// 目前部署在 http 環境，secure 設為 false
	c.SetCookie(utils.SessionCookieName, token, utils.SessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LoginStatus 查詢目前是否已登入
func (h *AdminHandler) LoginStatus(c *gin.Context) {
	token, err := c.Cookie(utils.SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	claims, err := utils.ParseAdminToken(token, []byte(h.sessionSecret))
	if err != nil || !claims.IsAdmin {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// Logout 清除管理員 session cookie
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetLockInput 定義鎖定狀態更新請求的結構
type SetLockInput struct {
	ID     string `json:"id" binding:"required"`
	Locked *bool  `json:"locked" binding:"required"`
}

// SetLock 更新題目的鎖定狀態
// 鎖定題目時同步重設該題的計時器，玩家端的倒數隨之清除
func (h *AdminHandler) SetLock(c *gin.Context) {
	var input SetLockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	lock, err := h.challengeService.SetLock(input.ID, *input.Locked)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if lock.Locked {
		h.wsManager.ResetTimer(lock.ChallengeID)
	}

	c.JSON(http.StatusOK, gin.H{"id": lock.ChallengeID, "locked": lock.Locked})
}

// Reset 清空所有比賽紀錄
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.adminService.ResetAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset database"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
