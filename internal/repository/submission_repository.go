package repository

import (
	"errors"

	"gorm.io/gorm"

	"vulnspot_web/internal/models"
	"vulnspot_web/internal/storage"
)

type SubmissionRepository interface {
	CreateChallengeSubmission(sub *models.ChallengeSubmission) error
	CountChallengeAttempts(name, challengeID string) (int64, error)
	HasCorrectChallenge(name, challengeID string) (bool, error)

	CreateFlagSubmission(sub *models.FlagSubmission) error
	HasCorrectFlag(name, challengeID string) (bool, error)

	DeleteAll() error
}

type submissionRepository struct {
	db *storage.PostgresDB
}

func NewSubmissionRepository(db *storage.PostgresDB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateChallengeSubmission(sub *models.ChallengeSubmission) error {
	return r.db.Create(sub).Error
}

// CountChallengeAttempts 計算玩家在某題已用的作答次數
func (r *submissionRepository) CountChallengeAttempts(name, challengeID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChallengeSubmission{}).
		Where("user_name = ? AND challenge_id = ?", name, challengeID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) HasCorrectChallenge(name, challengeID string) (bool, error) {
	var sub models.ChallengeSubmission
	err := r.db.Where("user_name = ? AND challenge_id = ? AND correct = ?", name, challengeID, true).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *submissionRepository) CreateFlagSubmission(sub *models.FlagSubmission) error {
	return r.db.Create(sub).Error
}

func (r *submissionRepository) HasCorrectFlag(name, challengeID string) (bool, error) {
	var sub models.FlagSubmission
	err := r.db.Where("user_name = ? AND challenge_id = ? AND correct = ?", name, challengeID, true).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll 清空所有作答與 flag 紀錄
func (r *submissionRepository) DeleteAll() error {
	if err := r.db.Unscoped().Where("1 = 1").Delete(&models.ChallengeSubmission{}).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Where("1 = 1").Delete(&models.FlagSubmission{}).Error
}
