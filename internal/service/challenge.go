package service

import (
	"errors"
	"os"
	"strings"

	"vulnspot_web/internal/models"
	"vulnspot_web/internal/repository"
)

// MaxLineAttempts 每位玩家每題的選行作答次數上限
const MaxLineAttempts = 2

const (
	lineScore = 1 // 答對漏洞行的分數
	flagScore = 5 // 答對 flag 的分數
)

var (
	ErrChallengeNotFound = errors.New("題目不存在")
	ErrChallengeLocked   = errors.New("題目已鎖定")
	ErrAlreadySolved     = errors.New("題目已經解開")
	ErrNoAttempts        = errors.New("沒有剩餘的作答次數")
	ErrFlagNotConfigured = errors.New("題目的 flag 尚未設定")
)

// ChallengeService 處理題目查詢、選行作答、flag 提交與鎖定狀態
type ChallengeService struct {
	submissionRepo  repository.SubmissionRepository
	lockRepo        repository.LockRepository
	leaderboardRepo repository.LeaderboardRepository
}

func NewChallengeService(submissionRepo repository.SubmissionRepository, lockRepo repository.LockRepository, leaderboardRepo repository.LeaderboardRepository) *ChallengeService {
	return &ChallengeService{
		submissionRepo:  submissionRepo,
		lockRepo:        lockRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// ListChallenges 回傳玩家視圖的題目列表，不含答案欄位
func (s *ChallengeService) ListChallenges() []models.PublicChallenge {
	list := make([]models.PublicChallenge, 0, len(models.Challenges))
	for i := range models.Challenges {
		list = append(list, models.Challenges[i].Public())
	}
	return list
}

// SubmitLineResult 選行作答的結果
type SubmitLineResult struct {
	Correct           bool `json:"correct"`
	Score             int  `json:"score"`
	AttemptsUsed      int  `json:"attemptsUsed"`
	AttemptsRemaining int  `json:"attemptsRemaining"`
}

// SubmitLine 處理一次選行作答
// 答對加一分且同一題不能重複得分；答錯不倒扣，但會消耗作答次數
func (s *ChallengeService) SubmitLine(name, avatar, challengeID string, selectedLine int) (*SubmitLineResult, error) {
	challenge := models.FindChallenge(challengeID)
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	locked, err := s.lockRepo.IsLocked(challengeID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrChallengeLocked
	}

	correct := challenge.IsVulnerableLine(selectedLine)

	// 已經答對過的題目不能再得分
	if correct {
		solved, err := s.submissionRepo.HasCorrectChallenge(name, challengeID)
		if err != nil {
			return nil, err
		}
		if solved {
			return nil, ErrAlreadySolved
		}
	}

	attempts, err := s.submissionRepo.CountChallengeAttempts(name, challengeID)
	if err != nil {
		return nil, err
	}
	if attempts >= MaxLineAttempts {
		return nil, ErrNoAttempts
	}

	if err := s.submissionRepo.CreateChallengeSubmission(&models.ChallengeSubmission{
		UserName:     name,
		ChallengeID:  challengeID,
		SelectedLine: selectedLine,
		Correct:      correct,
	}); err != nil {
		return nil, err
	}

	var user *models.LeaderboardUser
	if correct {
		user, err = s.leaderboardRepo.AddScore(name, avatar, lineScore)
	} else {
		// 答錯不扣分，只確保玩家出現在排行榜上
		user, err = s.leaderboardRepo.AddScore(name, avatar, 0)
	}
	if err != nil {
		return nil, err
	}

	used := int(attempts) + 1
	remaining := MaxLineAttempts - used
	if remaining < 0 {
		remaining = 0
	}

	return &SubmitLineResult{
		Correct:           correct,
		Score:             user.Score,
		AttemptsUsed:      used,
		AttemptsRemaining: remaining,
	}, nil
}

// Attempts 查詢玩家在某題已用與剩餘的作答次數
func (s *ChallengeService) Attempts(name, challengeID string) (used, remaining int, err error) {
	count, err := s.submissionRepo.CountChallengeAttempts(name, challengeID)
	if err != nil {
		return 0, 0, err
	}
	used = int(count)
	remaining = MaxLineAttempts - used
	if remaining < 0 {
		remaining = 0
	}
	return used, remaining, nil
}

// SubmitFlagResult flag 提交的結果
type SubmitFlagResult struct {
	Correct       bool `json:"correct"`
	AlreadySolved bool `json:"alreadySolved"`
	Score         int  `json:"score"`
}

// SubmitFlag 處理一次 flag 提交
// 正確答案從環境變數讀取，慣例為 FLAG_<題目ID>
func (s *ChallengeService) SubmitFlag(name, challengeID, flag string) (*SubmitFlagResult, error) {
	expected := os.Getenv("FLAG_" + challengeID)
	if expected == "" {
		return nil, ErrFlagNotConfigured
	}

	if models.FindChallenge(challengeID) == nil {
		return nil, ErrChallengeNotFound
	}

	locked, err := s.lockRepo.IsLocked(challengeID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrChallengeLocked
	}

	// 已經解過的玩家直接回傳目前分數，不再計分
	solved, err := s.submissionRepo.HasCorrectFlag(name, challengeID)
	if err != nil {
		return nil, err
	}
	if solved {
		score := 0
		if user, err := s.leaderboardRepo.FindByName(name); err == nil {
			score = user.Score
		}
		return &SubmitFlagResult{Correct: true, AlreadySolved: true, Score: score}, nil
	}

	correct := strings.TrimSpace(flag) == expected

	if err := s.submissionRepo.CreateFlagSubmission(&models.FlagSubmission{
		UserName:    name,
		ChallengeID: challengeID,
		Flag:        flag,
		Correct:     correct,
	}); err != nil {
		return nil, err
	}

	score := 0
	if correct {
		user, err := s.leaderboardRepo.AddScore(name, "", flagScore)
		if err != nil {
			return nil, err
		}
		score = user.Score
	} else {
		if user, err := s.leaderboardRepo.FindByName(name); err == nil {
			score = user.Score
		}
	}

	return &SubmitFlagResult{Correct: correct, Score: score}, nil
}

// FlagSolved 查詢玩家是否已解開某題的 flag
func (s *ChallengeService) FlagSolved(name, challengeID string) (bool, error) {
	return s.submissionRepo.HasCorrectFlag(name, challengeID)
}

// Locks 回傳所有題目的鎖定狀態，以題目 ID 為鍵
func (s *ChallengeService) Locks() (map[string]bool, error) {
	locks, err := s.lockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	lockMap := make(map[string]bool, len(locks))
	for _, lock := range locks {
		lockMap[lock.ChallengeID] = lock.Locked
	}
	return lockMap, nil
}

// SetLock 更新題目的鎖定狀態
func (s *ChallengeService) SetLock(challengeID string, locked bool) (*models.ChallengeLock, error) {
	return s.lockRepo.Set(challengeID, locked)
}
