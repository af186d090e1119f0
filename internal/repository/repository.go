package repository

import "vulnspot_web/internal/storage"

type Repositories struct {
	Leaderboard LeaderboardRepository
	Submission  SubmissionRepository
	Lock        LockRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Leaderboard: NewLeaderboardRepository(db),
		Submission:  NewSubmissionRepository(db),
		Lock:        NewLockRepository(db),
	}
}
