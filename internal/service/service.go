package service

import (
	"github.com/jonboulle/clockwork"

	"vulnspot_web/internal/config"
	"vulnspot_web/internal/repository"
)

type Services struct {
	Challenge        *ChallengeService
	Leaderboard      *LeaderboardService
	Admin            *AdminService
	WebSocketManager *WebSocketManager
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	// 在線集合與計時器狀態由這裡統一建立，再交給連線層持有
	presence := NewPresenceTracker()
	timers := NewTimerCoordinator(clockwork.NewRealClock())
	wsManager := NewWebSocketManager(presence, timers)

	challengeService := NewChallengeService(repos.Submission, repos.Lock, repos.Leaderboard)
	leaderboardService := NewLeaderboardService(repos.Leaderboard)
	adminService := NewAdminService(cfg.Admin.Password, repos)

	return &Services{
		Challenge:        challengeService,
		Leaderboard:      leaderboardService,
		Admin:            adminService,
		WebSocketManager: wsManager,
	}
}
