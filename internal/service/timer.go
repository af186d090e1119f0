package service

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"vulnspot_web/internal/models"
)

// TimerCoordinator 是每道題目倒數計時器的唯一狀態來源
// 每題最多一個計時器：不存在、進行中、暫停中三種狀態之一
// 時間來源透過 clockwork.Clock 注入，測試時可以控制時間
type TimerCoordinator struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	timers map[string]*models.TimerState
}

// NewTimerCoordinator 創建並初始化新的計時器協調器
func NewTimerCoordinator(clock clockwork.Clock) *TimerCoordinator {
	return &TimerCoordinator{
		clock:  clock,
		timers: make(map[string]*models.TimerState),
	}
}

func (t *TimerCoordinator) now() int64 {
	return t.clock.Now().UnixMilli()
}

// Start 為題目啟動計時器
// 任何狀態下都有效：已有計時器時等同於砍掉重練
func (t *TimerCoordinator) Start(challengeID string, durationMs int64) models.TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := &models.TimerState{
		StartTime: t.now(),
		Duration:  durationMs,
		IsRunning: true,
		IsPaused:  false,
	}
	t.timers[challengeID] = state
	return *state
}

// Pause 暫停進行中的計時器
// 只在計時器進行中有效，其他狀態一律靜默忽略
func (t *TimerCoordinator) Pause(challengeID string) (models.TimerState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.timers[challengeID]
	if !ok || !state.IsRunning || state.IsPaused {
		return models.TimerState{}, false
	}

	now := t.now()
	state.IsPaused = true
	state.PausedAt = now
	state.Remaining = (state.StartTime + state.Duration) - now
	state.IsRunning = false
	return *state, true
}

// Resume 恢復暫停中的計時器
// 以剩餘時間重新起算，而不是單純解除暫停
// 剩餘時間為零的計時器無法恢復
func (t *TimerCoordinator) Resume(challengeID string) (models.TimerState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.timers[challengeID]
	if !ok || !state.IsPaused || state.Remaining <= 0 {
		return models.TimerState{}, false
	}

	state.IsPaused = false
	state.IsRunning = true
	state.StartTime = t.now()
	state.Duration = state.Remaining
	state.PausedAt = 0
	state.Remaining = 0
	return *state, true
}

// Reset 刪除題目的計時器紀錄
// 回傳 true 表示原本有計時器，需要廣播清除事件
// 重設後該題目回到「沒有計時器」，而不是「計時器歸零」
func (t *TimerCoordinator) Reset(challengeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.timers[challengeID]; !ok {
		return false
	}
	delete(t.timers, challengeID)
	return true
}

// Snapshot 取得所有進行中或暫停中計時器的快照
// 供新連線重播用，讓中途加入的客戶端立即同步
func (t *TimerCoordinator) Snapshot() map[string]models.TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make(map[string]models.TimerState, len(t.timers))
	for id, state := range t.timers {
		if state.IsRunning || state.IsPaused {
			snapshot[id] = *state
		}
	}
	return snapshot
}

// SecondsLeft 計算題目顯示用的剩餘秒數
// 純推導值，不改變任何狀態；進行中的計時器超時後維持進行中，剩餘時間顯示為零
func (t *TimerCoordinator) SecondsLeft(challengeID string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.timers[challengeID]
	if !ok {
		return 0
	}
	if state.IsPaused {
		return state.Remaining / 1000
	}
	left := (state.StartTime + state.Duration) - t.now()
	if left < 0 {
		left = 0
	}
	return left / 1000
}
