package service

import (
	"sync"
)

// PresenceTracker 追蹤目前在線的非管理員玩家集合
// 同一玩家開多個分頁只算一人，管理員不列入計數
type PresenceTracker struct {
	mu     sync.Mutex
	active map[string]bool
}

// NewPresenceTracker 創建並初始化新的在線追蹤器
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		active: make(map[string]bool),
	}
}

// Add 將玩家加入在線集合
// 回傳 true 表示是新加入的玩家，人數有變動
func (p *PresenceTracker) Add(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active[userID] {
		return false
	}
	p.active[userID] = true
	return true
}

// Remove 將玩家移出在線集合
// 回傳 true 表示玩家原本在集合中，人數有變動
func (p *PresenceTracker) Remove(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active[userID] {
		return false
	}
	delete(p.active, userID)
	return true
}

// Contains 判斷玩家是否在線
func (p *PresenceTracker) Contains(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active[userID]
}

// Count 取得目前在線人數
func (p *PresenceTracker) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.active)
}
