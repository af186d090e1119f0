package service

import (
	"errors"

	"gorm.io/gorm"

	"vulnspot_web/internal/models"
	"vulnspot_web/internal/repository"
)

// 排行榜只顯示前十名
const leaderboardSize = 10

// LeaderboardService 處理排行榜查詢與名稱檢查
type LeaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{leaderboardRepo: leaderboardRepo}
}

// Top 取得分數最高的玩家列表
func (s *LeaderboardService) Top() ([]models.LeaderboardUser, error) {
	return s.leaderboardRepo.Top(leaderboardSize)
}

// SetScore 直接覆寫玩家分數，玩家不存在時自動建立
func (s *LeaderboardService) SetScore(name, avatar string, score int) (*models.LeaderboardUser, error) {
	return s.leaderboardRepo.SetScore(name, avatar, score)
}

// UsernameAvailable 檢查名稱是否還沒被使用
func (s *LeaderboardService) UsernameAvailable(name string) (bool, error) {
	_, err := s.leaderboardRepo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
