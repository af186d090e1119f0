package repository

import (
	"errors"

	"gorm.io/gorm"

	"vulnspot_web/internal/models"
	"vulnspot_web/internal/storage"
)

type LeaderboardRepository interface {
	FindByName(name string) (*models.LeaderboardUser, error)
	Top(limit int) ([]models.LeaderboardUser, error)
	// AddScore 依名稱加分，玩家不存在時自動建立
	AddScore(name, avatar string, delta int) (*models.LeaderboardUser, error)
	// SetScore 直接覆寫分數，玩家不存在時自動建立
	SetScore(name, avatar string, score int) (*models.LeaderboardUser, error)
	DeleteAll() error
}

type leaderboardRepository struct {
	db *storage.PostgresDB
}

func NewLeaderboardRepository(db *storage.PostgresDB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) FindByName(name string) (*models.LeaderboardUser, error) {
	var user models.LeaderboardUser
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Top 查詢分數最高的前幾名玩家
func (r *leaderboardRepository) Top(limit int) ([]models.LeaderboardUser, error) {
	var users []models.LeaderboardUser
	err := r.db.Order("score DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *leaderboardRepository) AddScore(name, avatar string, delta int) (*models.LeaderboardUser, error) {
	user, err := r.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.LeaderboardUser{Name: name, Avatar: avatar, Score: delta}
		if err := r.db.Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Score += delta
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *leaderboardRepository) SetScore(name, avatar string, score int) (*models.LeaderboardUser, error) {
	user, err := r.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.LeaderboardUser{Name: name, Avatar: avatar, Score: score}
		if err := r.db.Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Score = score
	user.Avatar = avatar
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAll 清空排行榜
// 使用 Unscoped 硬刪除，避免軟刪除殘留造成名稱唯一索引衝突
func (r *leaderboardRepository) DeleteAll() error {
	return r.db.Unscoped().Where("1 = 1").Delete(&models.LeaderboardUser{}).Error
}
