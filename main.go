package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"vulnspot_web/internal/api"
	"vulnspot_web/internal/config"
	"vulnspot_web/internal/models"
	"vulnspot_web/internal/repository"
	"vulnspot_web/internal/service"
	"vulnspot_web/internal/storage"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	// 使用配置中的信息建立到 PostgreSQL 數據庫的連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 排行榜、作答紀錄、flag 紀錄與題目鎖定四張表
	// 題目內容本身寫在程式碼裡，不需要遷移
	if err := db.AutoMigrate(
		&models.LeaderboardUser{},
		&models.ChallengeSubmission{},
		&models.FlagSubmission{},
		&models.ChallengeLock{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 初始化 services
	// 在線追蹤與計時器狀態也在這裡建立,隨服務一起傳遞
	services := service.NewServices(repos, cfg)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, cfg)

	// 啟動伺服器
	// HTTP API 和 WebSocket 共用同一個埠
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
