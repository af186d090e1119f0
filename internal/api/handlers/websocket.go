package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"vulnspot_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 任何來源都可以連線，計數和計時器不是安全邊界
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	wsManager *service.WebSocketManager
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 連線建立後由 manager 接手，玩家識別碼由客戶端透過 register 事件提供
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	h.wsManager.HandleConnection(conn)
}
