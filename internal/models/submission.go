package models

import (
	"gorm.io/gorm"
)

// ChallengeSubmission 表示一次選行作答紀錄
type ChallengeSubmission struct {
	gorm.Model
	UserName     string `gorm:"index" json:"userName"`
	ChallengeID  string `gorm:"index" json:"challengeId"`
	SelectedLine int    `json:"selectedLine"`
	Correct      bool   `json:"correct"`
}

// FlagSubmission 表示一次 flag 提交紀錄
type FlagSubmission struct {
	gorm.Model
	UserName    string `gorm:"index" json:"userName"`
	ChallengeID string `gorm:"index" json:"challengeId"`
	Flag        string `json:"flag"`
	Correct     bool   `json:"correct"`
}
