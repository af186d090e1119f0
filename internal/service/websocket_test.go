package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func newTestManager() *WebSocketManager {
	return NewWebSocketManager(NewPresenceTracker(), NewTimerCoordinator(clockwork.NewRealClock()))
}

func newTestServer(t *testing.T, m *WebSocketManager) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		m.HandleConnection(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialTest(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestRegisterBroadcastsUserCount(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	conn := dialTest(t, srv)
	sendEvent(t, conn, map[string]interface{}{"event": "register", "userId": "alice"})

	event := readEvent(t, conn)
	assert.Equal(t, "userCount", event["event"])
	assert.Equal(t, float64(1), event["count"])
	assert.Equal(t, 1, m.UserCount())
}

func TestMultipleTabsCountedOnce(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	conn1 := dialTest(t, srv)
	sendEvent(t, conn1, map[string]interface{}{"event": "register", "userId": "alice"})
	event := readEvent(t, conn1)
	assert.Equal(t, float64(1), event["count"])

	// 同一玩家的第二個分頁不會增加人數，也不會觸發廣播
	conn2 := dialTest(t, srv)
	sendEvent(t, conn2, map[string]interface{}{"event": "register", "userId": "alice"})
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, m.UserCount())

	// 關掉一個分頁，另一個分頁還在，玩家不應被移除
	conn1.Close()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, m.UserCount())

	// 新玩家加入，人數變成 2；conn2 收到的下一個事件必須是 2
	// 如果 alice 被提早移除，conn2 會先收到人數下降的廣播
	conn3 := dialTest(t, srv)
	sendEvent(t, conn3, map[string]interface{}{"event": "register", "userId": "bob"})
	event = readEvent(t, conn2)
	assert.Equal(t, "userCount", event["event"])
	assert.Equal(t, float64(2), event["count"])
	event = readEvent(t, conn3)
	assert.Equal(t, float64(2), event["count"])

	// 最後一個 alice 分頁關閉，這時才移除
	conn2.Close()
	event = readEvent(t, conn3)
	assert.Equal(t, "userCount", event["event"])
	assert.Equal(t, float64(1), event["count"])
}

func TestAdminNotCounted(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	adminConn := dialTest(t, srv)
	sendEvent(t, adminConn, map[string]interface{}{"event": "register", "userId": "admin-1", "isAdmin": true})
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, m.UserCount())

	// 玩家加入後管理員也會收到人數廣播，只是自己不列入計數
	playerConn := dialTest(t, srv)
	sendEvent(t, playerConn, map[string]interface{}{"event": "register", "userId": "carol"})

	event := readEvent(t, adminConn)
	assert.Equal(t, "userCount", event["event"])
	assert.Equal(t, float64(1), event["count"])
	assert.Equal(t, 1, m.UserCount())
}

func TestUnregisteredDisconnectIsNoop(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	conn := dialTest(t, srv)
	conn.Close()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, m.UserCount())
}

func TestTimerStartBroadcast(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	playerConn := dialTest(t, srv)
	sendEvent(t, playerConn, map[string]interface{}{"event": "register", "userId": "alice"})
	event := readEvent(t, playerConn)
	require.Equal(t, "userCount", event["event"])

	adminConn := dialTest(t, srv)
	sendEvent(t, adminConn, map[string]interface{}{
		"event":       "admin:startTimer",
		"challengeId": "C1",
		"duration":    300000,
	})

	// 所有連線都收到完整的計時器狀態
	event = readEvent(t, playerConn)
	assert.Equal(t, "timer:update", event["event"])
	assert.Equal(t, "C1", event["challengeId"])
	assert.Equal(t, true, event["isRunning"])
	assert.Equal(t, false, event["isPaused"])
	assert.Equal(t, float64(300000), event["duration"])
	assert.Greater(t, event["startTime"], float64(0))
}

func TestTimerReplayOnJoin(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	adminConn := dialTest(t, srv)
	sendEvent(t, adminConn, map[string]interface{}{
		"event":       "admin:startTimer",
		"challengeId": "C1",
		"duration":    300000,
	})
	event := readEvent(t, adminConn)
	require.Equal(t, "timer:update", event["event"])

	// 中途加入的連線立即收到進行中計時器的重播
	lateConn := dialTest(t, srv)
	event = readEvent(t, lateConn)
	assert.Equal(t, "timer:update", event["event"])
	assert.Equal(t, "C1", event["challengeId"])
	assert.Equal(t, true, event["isRunning"])
	assert.Equal(t, float64(300000), event["duration"])
}

func TestTimerResetBroadcastsAbsence(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	conn := dialTest(t, srv)
	sendEvent(t, conn, map[string]interface{}{
		"event":       "admin:startTimer",
		"challengeId": "C1",
		"duration":    300000,
	})
	event := readEvent(t, conn)
	require.Equal(t, "timer:update", event["event"])

	sendEvent(t, conn, map[string]interface{}{"event": "admin:resetTimer", "challengeId": "C1"})

	// 重設的廣播只帶題目 ID，不帶任何計時器欄位
	event = readEvent(t, conn)
	assert.Equal(t, "timer:update", event["event"])
	assert.Equal(t, "C1", event["challengeId"])
	_, hasRunning := event["isRunning"]
	assert.False(t, hasRunning)
	_, hasStart := event["startTime"]
	assert.False(t, hasStart)

	// 重設後加入的連線不會收到該題的重播
	lateConn := dialTest(t, srv)
	sendEvent(t, lateConn, map[string]interface{}{"event": "register", "userId": "dave"})
	event = readEvent(t, lateConn)
	assert.Equal(t, "userCount", event["event"])
}

func TestTimerGuardedCommandsDoNotBroadcast(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	conn := dialTest(t, srv)
	// 對不存在的計時器送出 pause 和 resume，應該被靜默忽略
	sendEvent(t, conn, map[string]interface{}{"event": "admin:pauseTimer", "challengeId": "C9"})
	sendEvent(t, conn, map[string]interface{}{"event": "admin:resumeTimer", "challengeId": "C9"})

	// 接著啟動計時器，收到的第一個事件必須就是 start 的廣播
	sendEvent(t, conn, map[string]interface{}{
		"event":       "admin:startTimer",
		"challengeId": "C1",
		"duration":    60000,
	})
	event := readEvent(t, conn)
	assert.Equal(t, "timer:update", event["event"])
	assert.Equal(t, "C1", event["challengeId"])
	assert.Equal(t, true, event["isRunning"])
}

func TestTimerPauseResumeOverWebSocket(t *testing.T) {
	m := newTestManager()
	srv := newTestServer(t, m)

	conn := dialTest(t, srv)
	sendEvent(t, conn, map[string]interface{}{
		"event":       "admin:startTimer",
		"challengeId": "C1",
		"duration":    300000,
	})
	event := readEvent(t, conn)
	require.Equal(t, true, event["isRunning"])

	sendEvent(t, conn, map[string]interface{}{"event": "admin:pauseTimer", "challengeId": "C1"})
	event = readEvent(t, conn)
	assert.Equal(t, false, event["isRunning"])
	assert.Equal(t, true, event["isPaused"])
	assert.Greater(t, event["remaining"], float64(0))
	assert.Greater(t, event["pausedAt"], float64(0))

	sendEvent(t, conn, map[string]interface{}{"event": "admin:resumeTimer", "challengeId": "C1"})
	event = readEvent(t, conn)
	assert.Equal(t, true, event["isRunning"])
	assert.Equal(t, false, event["isPaused"])
	_, hasRemaining := event["remaining"]
	assert.False(t, hasRemaining)
}
