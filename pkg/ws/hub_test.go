package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn)
		if !client.Register() {
			conn.Close()
			return
		}
		go client.ReadPump()
		go client.WritePump()
	}))

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubBroadcastsToClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := startHub(t, hub)

	first := dial(t, srv)
	second := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastMessage("garage.created", map[string]string{"name": "North"})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, "garage.created", msg.Type)
		assert.Equal(t, map[string]interface{}{"name": "North"}, msg.Data)
	}
}

func TestHubSendsInitData(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.SetInitDataProvider(func() interface{} {
		return []string{"North", "South"}
	})
	srv := startHub(t, hub)

	conn := dial(t, srv)
	msg := readMessage(t, conn)
	assert.Equal(t, MsgTypeInit, msg.Type)
	assert.Equal(t, []interface{}{"North", "South"}, msg.Data)
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := startHub(t, hub)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStopsOnContextCancel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	// 停止后的广播和注册不会阻塞
	hub.BroadcastMessage("noop", nil)
	assert.False(t, NewClient(hub, nil).Register())
}
