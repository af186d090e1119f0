package models

import (
	"gorm.io/gorm"
)

// LeaderboardUser 表示排行榜上的一位玩家
type LeaderboardUser struct {
	gorm.Model        // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Name       string `gorm:"uniqueIndex;not null" json:"name"` // 玩家名稱，必須唯一
	Avatar     string `json:"avatar"`
	Score      int    `json:"score"`
}
