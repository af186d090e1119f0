package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vulnspot_web/internal/service"
)

// ChallengeHandler 處理與題目相關的請求
type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

// NewChallengeHandler 創建一個新的 ChallengeHandler 實例
func NewChallengeHandler(challengeService *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// ListChallenges 回傳題目列表（玩家視圖，不含答案）
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	c.JSON(http.StatusOK, h.challengeService.ListChallenges())
}

// SubmitChallengeInput 定義選行作答請求的結構
type SubmitChallengeInput struct {
	Name         string `json:"name" binding:"required"`
	Avatar       string `json:"avatar"`
	ChallengeID  string `json:"challengeId" binding:"required"`
	SelectedLine *int   `json:"selectedLine" binding:"required"`
}

// SubmitChallenge 處理選行作答
func (h *ChallengeHandler) SubmitChallenge(c *gin.Context) {
	var input SubmitChallengeInput
	// 解析並驗證請求體
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.challengeService.SubmitLine(input.Name, input.Avatar, input.ChallengeID, *input.SelectedLine)
	if err != nil {
		h.handleSubmitError(c, input.Name, input.ChallengeID, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleSubmitError 將服務層錯誤轉換為對應的 HTTP 狀態碼
func (h *ChallengeHandler) handleSubmitError(c *gin.Context, name, challengeID string, err error) {
	switch {
	case errors.Is(err, service.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
	case errors.Is(err, service.ErrChallengeLocked):
		c.JSON(http.StatusLocked, gin.H{"error": "Challenge is locked"})
	case errors.Is(err, service.ErrAlreadySolved):
		c.JSON(http.StatusForbidden, gin.H{"error": "Challenge already solved", "alreadySolved": true})
	case errors.Is(err, service.ErrNoAttempts):
		used, _, _ := h.challengeService.Attempts(name, challengeID)
		c.JSON(http.StatusForbidden, gin.H{
			"error":             "No attempts remaining",
			"attemptsUsed":      used,
			"attemptsRemaining": 0,
		})
	case errors.Is(err, service.ErrFlagNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Flag for challenge not set in ENV"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// ChallengeAttemptsInput 定義作答次數查詢的結構
type ChallengeAttemptsInput struct {
	Name        string `json:"name" binding:"required"`
	ChallengeID string `json:"challengeId" binding:"required"`
}

// ChallengeAttempts 查詢玩家在某題的作答次數
func (h *ChallengeHandler) ChallengeAttempts(c *gin.Context) {
	var input ChallengeAttemptsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	used, remaining, err := h.challengeService.Attempts(input.Name, input.ChallengeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attemptsUsed": used, "attemptsRemaining": remaining})
}

// SubmitFlagInput 定義 flag 提交請求的結構
type SubmitFlagInput struct {
	Name        string `json:"name" binding:"required"`
	ChallengeID string `json:"challengeId" binding:"required"`
	Flag        string `json:"flag" binding:"required"`
}

// SubmitFlag 處理 flag 提交
func (h *ChallengeHandler) SubmitFlag(c *gin.Context) {
	var input SubmitFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing fields"})
		return
	}

	result, err := h.challengeService.SubmitFlag(input.Name, input.ChallengeID, input.Flag)
	if err != nil {
		h.handleSubmitError(c, input.Name, input.ChallengeID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"correct":       result.Correct,
		"alreadySolved": result.AlreadySolved,
		"score":         result.Score,
	})
}

// FlagStatusInput 定義 flag 狀態查詢的結構
type FlagStatusInput struct {
	Name        string `json:"name" binding:"required"`
	ChallengeID string `json:"challengeId" binding:"required"`
}

// FlagStatus 查詢玩家是否已解開某題的 flag
func (h *ChallengeHandler) FlagStatus(c *gin.Context) {
	var input FlagStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	solved, err := h.challengeService.FlagSolved(input.Name, input.ChallengeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"solved": solved})
}

// GetLocks 回傳所有題目的鎖定狀態
func (h *ChallengeHandler) GetLocks(c *gin.Context) {
	locks, err := h.challengeService.Locks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, locks)
}
