package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vulnspot_web/internal/api/handlers"
	"vulnspot_web/internal/config"
	"vulnspot_web/internal/middleware"
	"vulnspot_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, cfg *config.Config) {
	// 初始化 handlers
	challengeHandler := handlers.NewChallengeHandler(services.Challenge)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard)
	adminHandler := handlers.NewAdminHandler(services.Admin, services.Challenge, services.WebSocketManager, cfg.Admin.SessionSecret)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 題目與作答相關
		api.GET("/challenges", challengeHandler.ListChallenges)
		api.POST("/submit-challenge", challengeHandler.SubmitChallenge)
		api.POST("/challenge-attempts", challengeHandler.ChallengeAttempts)
		api.POST("/submit-flag", challengeHandler.SubmitFlag)
		api.POST("/flag-status", challengeHandler.FlagStatus)
		api.GET("/challenge-locks", challengeHandler.GetLocks)

		// 排行榜相關
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.POST("/leaderboard", leaderboardHandler.UpsertScore)
		api.POST("/check-username", leaderboardHandler.CheckUsername)

		// 管理員登入
		api.POST("/admin/login", adminHandler.Login)
		api.GET("/admin/login", adminHandler.LoginStatus)
		api.POST("/admin/logout", adminHandler.Logout)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要管理員 session 的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AdminAuthMiddleware(cfg.Admin.SessionSecret))
	{
		authorized.POST("/challenge-locks", adminHandler.SetLock) // 鎖定或解鎖題目
		authorized.POST("/admin/reset", adminHandler.Reset)      // 清空比賽紀錄
	}

	// WebSocket 連接點（在線人數與計時器同步）
	r.GET("/ws", wsHandler.HandleWebSocket)
}
