package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"
	"seedy/internal/service"

	"github.com/gorilla/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHubServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Community{}, &model.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hub := NewHub(service.NewChatService(&mysql.MessageRepository{DB: db}))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := strconv.ParseUint(r.URL.Query().Get("user"), 10, 64)
		communityID, _ := strconv.ParseUint(r.URL.Query().Get("community"), 10, 64)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(r.Context(), conn, userID, communityID)
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, db
}

func dialRoom(t *testing.T, srv *httptest.Server, userID, communityID uint64) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/?user=" + strconv.FormatUint(userID, 10) +
		"&community=" + strconv.FormatUint(communityID, 10)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial room %d: %v", communityID, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func seedChatFixture(t *testing.T, db *gorm.DB) (userID uint64, communityIDs []uint64) {
	t.Helper()
	user := &model.User{Username: "ana", Email: "ana@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, name := range []string{"growers", "foragers"} {
		community := &model.Community{Name: name, Description: "d", Picture: "p.png"}
		if err := db.Create(community).Error; err != nil {
			t.Fatalf("create community %s: %v", name, err)
		}
		communityIDs = append(communityIDs, community.ID)
	}
	return user.ID, communityIDs
}

func TestBroadcastScopedToCommunityRoom(t *testing.T) {
	srv, db := setupHubServer(t)
	userID, communities := seedChatFixture(t, db)

	sender := dialRoom(t, srv, userID, communities[0])
	sameRoom := dialRoom(t, srv, userID, communities[0])
	otherRoom := dialRoom(t, srv, userID, communities[1])

	// give the hub a beat to register all three
	time.Sleep(100 * time.Millisecond)

	frame := map[string]any{
		"event":        "send_message",
		"community_id": communities[0],
		"text":         "hello growers",
	}
	if err := sender.WriteJSON(frame); err != nil {
		t.Fatalf("send: %v", err)
	}

	var got struct {
		Event   string        `json:"event"`
		Payload model.Message `json:"payload"`
	}
	sameRoom.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := sameRoom.ReadJSON(&got); err != nil {
		t.Fatalf("same-room read: %v", err)
	}
	if got.Event != "receive_message" {
		t.Errorf("event = %q, want receive_message", got.Event)
	}
	if got.Payload.Text != "hello growers" {
		t.Errorf("text = %q", got.Payload.Text)
	}
	if got.Payload.ID == 0 {
		t.Error("relayed message has no id")
	}
	if got.Payload.CreatedAt.IsZero() {
		t.Error("relayed message has no timestamp")
	}

	// the other community's client must stay silent
	otherRoom.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := otherRoom.ReadMessage(); err == nil {
		t.Error("client in another community received the message")
	}

	var count int64
	db.Model(&model.Message{}).Count(&count)
	if count != 1 {
		t.Errorf("persisted messages = %d, want 1", count)
	}
}

func TestSenderReceivesOwnMessage(t *testing.T) {
	srv, db := setupHubServer(t)
	userID, communities := seedChatFixture(t, db)

	sender := dialRoom(t, srv, userID, communities[0])
	time.Sleep(100 * time.Millisecond)

	frame := map[string]any{
		"event":        "send_message",
		"community_id": communities[0],
		"text":         "echo",
	}
	if err := sender.WriteJSON(frame); err != nil {
		t.Fatalf("send: %v", err)
	}

	var got struct {
		Event   string        `json:"event"`
		Payload model.Message `json:"payload"`
	}
	sender.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := sender.ReadJSON(&got); err != nil {
		t.Fatalf("read own echo: %v", err)
	}
	if got.Payload.Text != "echo" {
		t.Errorf("text = %q", got.Payload.Text)
	}
}

func TestInvalidFrameIsDropped(t *testing.T) {
	srv, db := setupHubServer(t)
	userID, communities := seedChatFixture(t, db)

	sender := dialRoom(t, srv, userID, communities[0])
	time.Sleep(100 * time.Millisecond)

	if err := sender.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("send garbage: %v", err)
	}
	if err := sender.WriteJSON(map[string]any{"event": "unknown_event"}); err != nil {
		t.Fatalf("send unknown event: %v", err)
	}
	// empty text fails validation, nothing persisted
	if err := sender.WriteJSON(map[string]any{
		"event":        "send_message",
		"community_id": communities[0],
		"text":         "",
	}); err != nil {
		t.Fatalf("send empty: %v", err)
	}

	sender.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := sender.ReadMessage(); err == nil {
		t.Error("a dropped frame was broadcast")
	}

	var count int64
	db.Model(&model.Message{}).Count(&count)
	if count != 0 {
		t.Errorf("persisted messages = %d, want 0", count)
	}
}
