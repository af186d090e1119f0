package service

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"vulnspot_web/internal/repository"
)

// AdminService 處理管理員密碼驗證與比賽重置
// 管理密碼是共用密語，啟動時先做一次 bcrypt 雜湊，記憶體中不留明文
type AdminService struct {
	passwordHash []byte
	repos        *repository.Repositories
}

func NewAdminService(password string, repos *repository.Repositories) *AdminService {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	return &AdminService{
		passwordHash: hash,
		repos:        repos,
	}
}

// VerifyPassword 驗證管理員密碼
func (s *AdminService) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

// ResetAll 清空所有作答、flag、排行榜與鎖定紀錄
// 用於比賽重新開始
func (s *AdminService) ResetAll() error {
	if err := s.repos.Submission.DeleteAll(); err != nil {
		return err
	}
	if err := s.repos.Leaderboard.DeleteAll(); err != nil {
		return err
	}
	return s.repos.Lock.DeleteAll()
}
