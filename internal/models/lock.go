package models

import (
	"gorm.io/gorm"
)

// ChallengeLock 表示一道題目的鎖定狀態
// 鎖定後玩家無法作答，管理員解鎖才開放
type ChallengeLock struct {
	gorm.Model
	ChallengeID string `gorm:"uniqueIndex;not null" json:"challengeId"`
	Locked      bool   `json:"locked"`
}
