package models

// WebSocket 事件名稱
// 入站事件由客戶端發送，出站事件由伺服器廣播
const (
	EventRegister    = "register"
	EventStartTimer  = "admin:startTimer"
	EventPauseTimer  = "admin:pauseTimer"
	EventResumeTimer = "admin:resumeTimer"
	EventResetTimer  = "admin:resetTimer"

	EventUserCount   = "userCount"
	EventTimerUpdate = "timer:update"
)

// ClientEvent 代表一個統一的入站消息結構
// 不同事件只會用到其中部分欄位
type ClientEvent struct {
	Event       string `json:"event"`
	UserID      string `json:"userId,omitempty"`
	IsAdmin     bool   `json:"isAdmin,omitempty"`
	ChallengeID string `json:"challengeId,omitempty"`
	Duration    int64  `json:"duration,omitempty"` // 毫秒
}

// TimerState 是單一題目倒數計時器的完整狀態
// 時間一律使用 Unix 毫秒，方便前端直接運算
type TimerState struct {
	StartTime int64 `json:"startTime"`
	Duration  int64 `json:"duration"`
	IsRunning bool  `json:"isRunning"`
	IsPaused  bool  `json:"isPaused"`
	PausedAt  int64 `json:"pausedAt,omitempty"`  // 只在暫停時有值
	Remaining int64 `json:"remaining,omitempty"` // 只在暫停時有值
}

// UserCountEvent 在線人數變動時廣播給所有客戶端
type UserCountEvent struct {
	Event string `json:"event"`
	Count int    `json:"count"`
}

// TimerUpdateEvent 計時器狀態變動時廣播
// TimerState 為 nil 表示該題目已無計時器，客戶端應清除本地狀態
type TimerUpdateEvent struct {
	Event       string `json:"event"`
	ChallengeID string `json:"challengeId"`
	*TimerState
}

// NewUserCountEvent 建立一個在線人數事件
func NewUserCountEvent(count int) UserCountEvent {
	return UserCountEvent{
		Event: EventUserCount,
		Count: count,
	}
}

// NewTimerUpdateEvent 建立一個計時器更新事件
func NewTimerUpdateEvent(challengeID string, state *TimerState) TimerUpdateEvent {
	return TimerUpdateEvent{
		Event:       EventTimerUpdate,
		ChallengeID: challengeID,
		TimerState:  state,
	}
}
