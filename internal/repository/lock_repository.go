package repository

import (
	"errors"

	"gorm.io/gorm"

	"vulnspot_web/internal/models"
	"vulnspot_web/internal/storage"
)

type LockRepository interface {
	FindAll() ([]models.ChallengeLock, error)
	IsLocked(challengeID string) (bool, error)
	// Set 更新鎖定狀態，紀錄不存在時自動建立
	Set(challengeID string, locked bool) (*models.ChallengeLock, error)
	DeleteAll() error
}

type lockRepository struct {
	db *storage.PostgresDB
}

func NewLockRepository(db *storage.PostgresDB) LockRepository {
	return &lockRepository{db: db}
}

func (r *lockRepository) FindAll() ([]models.ChallengeLock, error) {
	var locks []models.ChallengeLock
	err := r.db.Find(&locks).Error
	return locks, err
}

func (r *lockRepository) IsLocked(challengeID string) (bool, error) {
	var lock models.ChallengeLock
	err := r.db.Where("challenge_id = ?", challengeID).First(&lock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return lock.Locked, nil
}

func (r *lockRepository) Set(challengeID string, locked bool) (*models.ChallengeLock, error) {
	var lock models.ChallengeLock
	err := r.db.Where("challenge_id = ?", challengeID).First(&lock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		lock = models.ChallengeLock{ChallengeID: challengeID, Locked: locked}
		if err := r.db.Create(&lock).Error; err != nil {
			return nil, err
		}
		return &lock, nil
	}
	if err != nil {
		return nil, err
	}

	lock.Locked = locked
	if err := r.db.Save(&lock).Error; err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *lockRepository) DeleteAll() error {
	return r.db.Unscoped().Where("1 = 1").Delete(&models.ChallengeLock{}).Error
}
