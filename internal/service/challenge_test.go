package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vulnspot_web/internal/models"
)

// 測試用的記憶體版 repositories

type fakeSubmissionRepo struct {
	challengeSubs []models.ChallengeSubmission
	flagSubs      []models.FlagSubmission
}

func (r *fakeSubmissionRepo) CreateChallengeSubmission(sub *models.ChallengeSubmission) error {
	r.challengeSubs = append(r.challengeSubs, *sub)
	return nil
}

func (r *fakeSubmissionRepo) CountChallengeAttempts(name, challengeID string) (int64, error) {
	var count int64
	for _, sub := range r.challengeSubs {
		if sub.UserName == name && sub.ChallengeID == challengeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) HasCorrectChallenge(name, challengeID string) (bool, error) {
	for _, sub := range r.challengeSubs {
		if sub.UserName == name && sub.ChallengeID == challengeID && sub.Correct {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubmissionRepo) CreateFlagSubmission(sub *models.FlagSubmission) error {
	r.flagSubs = append(r.flagSubs, *sub)
	return nil
}

func (r *fakeSubmissionRepo) HasCorrectFlag(name, challengeID string) (bool, error) {
	for _, sub := range r.flagSubs {
		if sub.UserName == name && sub.ChallengeID == challengeID && sub.Correct {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubmissionRepo) DeleteAll() error {
	r.challengeSubs = nil
	r.flagSubs = nil
	return nil
}

type fakeLockRepo struct {
	locks map[string]bool
}

func (r *fakeLockRepo) FindAll() ([]models.ChallengeLock, error) {
	var locks []models.ChallengeLock
	for id, locked := range r.locks {
		locks = append(locks, models.ChallengeLock{ChallengeID: id, Locked: locked})
	}
	return locks, nil
}

func (r *fakeLockRepo) IsLocked(challengeID string) (bool, error) {
	return r.locks[challengeID], nil
}

func (r *fakeLockRepo) Set(challengeID string, locked bool) (*models.ChallengeLock, error) {
	r.locks[challengeID] = locked
	return &models.ChallengeLock{ChallengeID: challengeID, Locked: locked}, nil
}

func (r *fakeLockRepo) DeleteAll() error {
	r.locks = map[string]bool{}
	return nil
}

type fakeLeaderboardRepo struct {
	users map[string]*models.LeaderboardUser
}

func (r *fakeLeaderboardRepo) FindByName(name string) (*models.LeaderboardUser, error) {
	user, ok := r.users[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeLeaderboardRepo) Top(limit int) ([]models.LeaderboardUser, error) {
	var users []models.LeaderboardUser
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeLeaderboardRepo) AddScore(name, avatar string, delta int) (*models.LeaderboardUser, error) {
	user, ok := r.users[name]
	if !ok {
		user = &models.LeaderboardUser{Name: name, Avatar: avatar, Score: delta}
		r.users[name] = user
		return user, nil
	}
	user.Score += delta
	if avatar != "" {
		user.Avatar = avatar
	}
	return user, nil
}

func (r *fakeLeaderboardRepo) SetScore(name, avatar string, score int) (*models.LeaderboardUser, error) {
	user := &models.LeaderboardUser{Name: name, Avatar: avatar, Score: score}
	r.users[name] = user
	return user, nil
}

func (r *fakeLeaderboardRepo) DeleteAll() error {
	r.users = map[string]*models.LeaderboardUser{}
	return nil
}

func newTestChallengeService() (*ChallengeService, *fakeSubmissionRepo, *fakeLockRepo, *fakeLeaderboardRepo) {
	subs := &fakeSubmissionRepo{}
	locks := &fakeLockRepo{locks: map[string]bool{}}
	board := &fakeLeaderboardRepo{users: map[string]*models.LeaderboardUser{}}
	return NewChallengeService(subs, locks, board), subs, locks, board
}

func TestSubmitLineCorrect(t *testing.T) {
	s, _, _, board := newTestChallengeService()

	// DEMO 題的漏洞行是第 3 行
	result, err := s.SubmitLine("alice", "cat", "DEMO", 3)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 1, result.AttemptsUsed)
	assert.Equal(t, 1, result.AttemptsRemaining)
	assert.Equal(t, 1, board.users["alice"].Score)
}

func TestSubmitLineIncorrectNoPenalty(t *testing.T) {
	s, _, _, board := newTestChallengeService()

	result, err := s.SubmitLine("alice", "cat", "DEMO", 1)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.Score)

	// 答錯不扣分，但玩家要出現在排行榜上
	user, ok := board.users["alice"]
	require.True(t, ok)
	assert.Equal(t, 0, user.Score)
}

func TestSubmitLineAttemptLimit(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	_, err := s.SubmitLine("alice", "", "DEMO", 1)
	require.NoError(t, err)
	result, err := s.SubmitLine("alice", "", "DEMO", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.AttemptsUsed)
	assert.Equal(t, 0, result.AttemptsRemaining)

	// 第三次作答被拒絕
	_, err = s.SubmitLine("alice", "", "DEMO", 3)
	assert.ErrorIs(t, err, ErrNoAttempts)
}

func TestSubmitLineAlreadySolved(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	_, err := s.SubmitLine("alice", "", "DEMO", 3)
	require.NoError(t, err)

	// 同一題不能重複得分
	_, err = s.SubmitLine("alice", "", "DEMO", 3)
	assert.ErrorIs(t, err, ErrAlreadySolved)
}

func TestSubmitLineUnknownChallenge(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	_, err := s.SubmitLine("alice", "", "NOPE", 1)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestSubmitLineLockedChallenge(t *testing.T) {
	s, _, locks, _ := newTestChallengeService()
	locks.locks["DEMO"] = true

	_, err := s.SubmitLine("alice", "", "DEMO", 3)
	assert.ErrorIs(t, err, ErrChallengeLocked)
}

func TestSubmitFlagCorrect(t *testing.T) {
	t.Setenv("FLAG_DEMO", "flag{demo}")
	s, _, _, board := newTestChallengeService()

	result, err := s.SubmitFlag("alice", "DEMO", "flag{demo}")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.False(t, result.AlreadySolved)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 5, board.users["alice"].Score)

	solved, err := s.FlagSolved("alice", "DEMO")
	require.NoError(t, err)
	assert.True(t, solved)
}

func TestSubmitFlagTrimsWhitespace(t *testing.T) {
	t.Setenv("FLAG_DEMO", "flag{demo}")
	s, _, _, _ := newTestChallengeService()

	result, err := s.SubmitFlag("alice", "DEMO", "  flag{demo}\n")
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestSubmitFlagIncorrect(t *testing.T) {
	t.Setenv("FLAG_DEMO", "flag{demo}")
	s, subs, _, _ := newTestChallengeService()

	result, err := s.SubmitFlag("alice", "DEMO", "flag{wrong}")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.Score)
	// 答錯也要留下紀錄
	assert.Len(t, subs.flagSubs, 1)
}

func TestSubmitFlagAlreadySolved(t *testing.T) {
	t.Setenv("FLAG_DEMO", "flag{demo}")
	s, _, _, _ := newTestChallengeService()

	_, err := s.SubmitFlag("alice", "DEMO", "flag{demo}")
	require.NoError(t, err)

	// 已解過的題目回報 alreadySolved，分數不變
	result, err := s.SubmitFlag("alice", "DEMO", "flag{demo}")
	require.NoError(t, err)
	assert.True(t, result.AlreadySolved)
	assert.Equal(t, 5, result.Score)
}

func TestSubmitFlagNotConfigured(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	_, err := s.SubmitFlag("alice", "DEMO", "flag{demo}")
	assert.ErrorIs(t, err, ErrFlagNotConfigured)
}

func TestListChallengesHidesAnswers(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	list := s.ListChallenges()
	require.Len(t, list, len(models.Challenges))
	assert.Equal(t, "DEMO", list[0].ID)
	assert.NotEmpty(t, list[0].Code)
}

func TestAttempts(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	used, remaining, err := s.Attempts("alice", "DEMO")
	require.NoError(t, err)
	assert.Equal(t, 0, used)
	assert.Equal(t, MaxLineAttempts, remaining)

	_, err = s.SubmitLine("alice", "", "DEMO", 1)
	require.NoError(t, err)

	used, remaining, err = s.Attempts("alice", "DEMO")
	require.NoError(t, err)
	assert.Equal(t, 1, used)
	assert.Equal(t, 1, remaining)
}

func TestLocks(t *testing.T) {
	s, _, _, _ := newTestChallengeService()

	_, err := s.SetLock("DEMO", true)
	require.NoError(t, err)

	locks, err := s.Locks()
	require.NoError(t, err)
	assert.True(t, locks["DEMO"])

	_, err = s.SetLock("DEMO", false)
	require.NoError(t, err)
	locks, err = s.Locks()
	require.NoError(t, err)
	assert.False(t, locks["DEMO"])
}
