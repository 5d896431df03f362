package console

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/config"
	"advisory-console/internal/logging"
)

// wsPair returns the server and client ends of a websocket connection.
func wsPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- ws
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server := <-conns
	t.Cleanup(func() { _ = server.Close() })
	return server, client
}

func readVersion(t *testing.T, client *websocket.Conn) uint64 {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	return snap.Version
}

func newTestService(t *testing.T) (*Service, *Session) {
	t.Helper()
	var cfg config.Config
	cfg.Console.MaxWSConnections = 2
	cfg.Console.KBPageSize = 15
	svc := New(nil, logging.NewNop(), cfg)
	sess, err := svc.session(svc.OpenSession(false).SessionID)
	require.NoError(t, err)
	return svc, sess
}

func TestPublish_DropsOlderSnapshots(t *testing.T) {
	svc, sess := newTestService(t)
	server, client := wsPair(t)
	require.NoError(t, svc.Hub().AddConnection(sess.ID, server))

	svc.publish(sess, Snapshot{SessionID: sess.ID, Version: 2})
	svc.publish(sess, Snapshot{SessionID: sess.ID, Version: 1})
	svc.publish(sess, Snapshot{SessionID: sess.ID, Version: 3})

	assert.Equal(t, uint64(2), readVersion(t, client))
	assert.Equal(t, uint64(3), readVersion(t, client))
}

func TestUpdate_StampsIncreasingVersions(t *testing.T) {
	svc, sess := newTestService(t)
	server, client := wsPair(t)
	require.NoError(t, svc.Hub().AddConnection(sess.ID, server))

	require.NoError(t, svc.Push(sess.ID))
	assert.Equal(t, uint64(0), readVersion(t, client))

	svc.update(sess, func(*Session) {})
	svc.update(sess, func(*Session) {})
	assert.Equal(t, uint64(1), readVersion(t, client))
	assert.Equal(t, uint64(2), readVersion(t, client))

	snap, err := svc.Snapshot(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)
}

func TestHub_SendDropsStalledConnection(t *testing.T) {
	hub := NewHub(2, logging.NewNop())
	hub.writeTimeout = 50 * time.Millisecond

	stalled, _ := wsPair(t)
	live, liveClient := wsPair(t)
	require.NoError(t, hub.AddConnection("stalled", stalled))
	require.NoError(t, hub.AddConnection("live", live))

	// The stalled client never reads, so its socket buffers fill and a write times out.
	msg := make([]byte, 1<<20)
	for i := 0; i < 512 && hub.Count("stalled") > 0; i++ {
		hub.Send("stalled", msg)
	}
	assert.Zero(t, hub.Count("stalled"))

	hub.Send("live", []byte("ok"))
	require.NoError(t, liveClient.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := liveClient.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, 1, hub.Count("live"))
}
