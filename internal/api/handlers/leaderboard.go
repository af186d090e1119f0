package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vulnspot_web/internal/service"
)

// LeaderboardHandler 處理與排行榜相關的請求
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler 創建一個新的 LeaderboardHandler 實例
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard 回傳分數最高的玩家列表
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	users, err := h.leaderboardService.Top()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpsertScoreInput 定義分數覆寫請求的結構
type UpsertScoreInput struct {
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
	Score  *int   `json:"score" binding:"required"`
}

// UpsertScore 建立或覆寫玩家分數
func (h *LeaderboardHandler) UpsertScore(c *gin.Context) {
	var input UpsertScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	user, err := h.leaderboardService.SetScore(input.Name, input.Avatar, *input.Score)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// CheckUsernameInput 定義名稱檢查請求的結構
type CheckUsernameInput struct {
	Username string `json:"username" binding:"required"`
}

// CheckUsername 檢查名稱是否可用
func (h *LeaderboardHandler) CheckUsername(c *gin.Context) {
	var input CheckUsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username"})
		return
	}

	available, err := h.leaderboardService.UsernameAvailable(input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}
