package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"vulnspot_web/internal/models"
)

// Client 代表一個 WebSocket 客戶端連接（一個瀏覽器分頁一條連線）
type Client struct {
	ID         string          // 連線識別碼
	Conn       *websocket.Conn // WebSocket 連接
	UserID     string          // 註冊後綁定的玩家識別碼
	IsAdmin    bool            // 是否為管理員連線
	Registered bool            // 是否已完成 register
	SendChan   chan []byte     // 消息發送通道，用於異步傳送消息
}

// WebSocketManager 管理所有的 WebSocket 連接和消息傳遞
// 所有事件（連線、斷線、register、管理員指令）都在同一把鎖下處理，
// 保證同一題目的計時器廣播有全序，狀態變更不會交錯
type WebSocketManager struct {
	mu       sync.Mutex
	clients  map[*Client]bool
	presence *PresenceTracker
	timers   *TimerCoordinator
	handlers map[string]func(*Client, *models.ClientEvent) // 事件名稱 -> 處理函數
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager(presence *PresenceTracker, timers *TimerCoordinator) *WebSocketManager {
	m := &WebSocketManager{
		clients:  make(map[*Client]bool),
		presence: presence,
		timers:   timers,
	}
	m.handlers = map[string]func(*Client, *models.ClientEvent){
		models.EventRegister:    m.handleRegister,
		models.EventStartTimer:  m.handleStartTimer,
		models.EventPauseTimer:  m.handlePauseTimer,
		models.EventResumeTimer: m.handleResumeTimer,
		models.EventResetTimer:  m.handleResetTimer,
	}
	return m
}

// HandleConnection 處理新的 WebSocket 連接請求
// 阻塞直到連線結束，斷線時自動清理在線狀態
func (m *WebSocketManager) HandleConnection(conn *websocket.Conn) {
	client := &Client{
		ID:       uuid.NewString(),
		Conn:     conn,
		SendChan: make(chan []byte, 256), // 設置緩衝大小為 256 的消息通道
	}

	m.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		conn.Close()
		close(client.SendChan)
	}()

	// 啟動讀寫處理
	go m.writePump(client)
	m.readPump(client)
}

// addClient 登記新連線並重播目前所有計時器狀態給它
func (m *WebSocketManager) addClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clients[client] = true

	// 中途加入的客戶端立即收到每個進行中或暫停中計時器的完整狀態
	for challengeID, state := range m.timers.Snapshot() {
		s := state
		m.sendToClient(client, models.NewTimerUpdateEvent(challengeID, &s))
	}
}

// removeClient 移除連線並在必要時更新在線人數
// 斷線時掃描所有存活連線，確認同一玩家沒有其他分頁還開著
// 才將玩家移出在線集合，避免多分頁時提早移除
func (m *WebSocketManager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.clients[client] {
		return
	}
	delete(m.clients, client)

	if !client.Registered || client.IsAdmin || client.UserID == "" {
		return
	}

	for other := range m.clients {
		if other.Registered && !other.IsAdmin && other.UserID == client.UserID {
			return // 同一玩家還有其他分頁在線
		}
	}

	if m.presence.Remove(client.UserID) {
		m.broadcast(models.NewUserCountEvent(m.presence.Count()))
	}
}

// dispatch 依事件名稱查表分發
// 未知事件靜默忽略，所有處理都在鎖內完成，保證事件處理不交錯
func (m *WebSocketManager) dispatch(client *Client, event *models.ClientEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	handler, ok := m.handlers[event.Event]
	if !ok {
		log.Printf("unknown websocket event: %s", event.Event)
		return
	}
	handler(client, event)
}

// handleRegister 將玩家識別碼綁定到連線
// 管理員連線不計入在線人數；同一玩家的第二個分頁不會灌水
func (m *WebSocketManager) handleRegister(client *Client, event *models.ClientEvent) {
	client.UserID = event.UserID
	client.IsAdmin = event.IsAdmin
	client.Registered = true

	if event.IsAdmin || event.UserID == "" {
		return
	}
	if m.presence.Add(event.UserID) {
		m.broadcast(models.NewUserCountEvent(m.presence.Count()))
	}
}

func (m *WebSocketManager) handleStartTimer(client *Client, event *models.ClientEvent) {
	if event.ChallengeID == "" {
		return
	}
	state := m.timers.Start(event.ChallengeID, event.Duration)
	m.broadcast(models.NewTimerUpdateEvent(event.ChallengeID, &state))
}

func (m *WebSocketManager) handlePauseTimer(client *Client, event *models.ClientEvent) {
	state, ok := m.timers.Pause(event.ChallengeID)
	if !ok {
		return
	}
	m.broadcast(models.NewTimerUpdateEvent(event.ChallengeID, &state))
}

func (m *WebSocketManager) handleResumeTimer(client *Client, event *models.ClientEvent) {
	state, ok := m.timers.Resume(event.ChallengeID)
	if !ok {
		return
	}
	m.broadcast(models.NewTimerUpdateEvent(event.ChallengeID, &state))
}

func (m *WebSocketManager) handleResetTimer(client *Client, event *models.ClientEvent) {
	if !m.timers.Reset(event.ChallengeID) {
		return
	}
	// 廣播只帶題目 ID、不帶計時器欄位，客戶端據此清除本地狀態
	m.broadcast(models.NewTimerUpdateEvent(event.ChallengeID, nil))
}

// ResetTimer 提供給 HTTP 層的重設入口
// 題目被鎖定時由鎖定處理器呼叫，效果等同管理員送出 admin:resetTimer
func (m *WebSocketManager) ResetTimer(challengeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.timers.Reset(challengeID) {
		return
	}
	m.broadcast(models.NewTimerUpdateEvent(challengeID, nil))
}

// UserCount 取得目前在線人數
func (m *WebSocketManager) UserCount() int {
	return m.presence.Count()
}

// broadcast 向所有連線廣播消息，必須在持有 m.mu 時呼叫
// 發送是 fire-and-forget：通道滿的客戶端直接丟棄這則消息，
// 不阻塞其他人，斷線的連線等 removeClient 時再清理
func (m *WebSocketManager) broadcast(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("message encoding error: %v", err)
		return
	}

	for client := range m.clients {
		select {
		case client.SendChan <- data:
			// 消息成功加入發送隊列
		default:
			log.Printf("client %s send buffer full, dropping message", client.ID)
		}
	}
}

// sendToClient 只發送給單一連線，必須在持有 m.mu 時呼叫
func (m *WebSocketManager) sendToClient(client *Client, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("message encoding error: %v", err)
		return
	}

	select {
	case client.SendChan <- data:
	default:
		log.Printf("client %s send buffer full, dropping message", client.ID)
	}
}

// readPump 持續監聽並處理從客戶端接收的消息
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		// 解析接收到的消息
		var event models.ClientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}

		m.dispatch(client, &event)
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
