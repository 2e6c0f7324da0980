package ws

import (
	"encoding/json"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gắn client vào hub không qua Register để test không cần kết nối thật
func addJobClient(h *Hub, jobID string) (*websocket.Conn, *Client) {
	conn := &websocket.Conn{}
	client := &Client{Conn: conn, Send: make(chan []byte, 256)}

	h.Mutex.Lock()
	defer h.Mutex.Unlock()
	if _, ok := h.Clients[jobID]; !ok {
		h.Clients[jobID] = make(map[*websocket.Conn]*Client)
	}
	h.Clients[jobID][conn] = client
	return conn, client
}

func newTestHub() *Hub {
	return &Hub{
		Clients:       make(map[string]map[*websocket.Conn]*Client),
		GlobalClients: make(map[*websocket.Conn]*Client),
	}
}

func TestBroadcastDeliversPerJob(t *testing.T) {
	h := newTestHub()
	_, c1 := addJobClient(h, "job-1")
	_, c2 := addJobClient(h, "job-2")

	h.Broadcast("job-1", []byte("xin chào"))

	select {
	case msg := <-c1.Send:
		assert.Equal(t, "xin chào", string(msg))
	default:
		t.Fatal("client job-1 không nhận được message")
	}
	assert.Empty(t, c2.Send)
}

func TestUnregisterClosesSendAndCleansUp(t *testing.T) {
	h := newTestHub()
	conn, client := addJobClient(h, "job-1")

	h.Unregister("job-1", conn)

	_, open := <-client.Send
	assert.False(t, open, "kênh Send phải được đóng")

	stats := h.GetStats()
	assert.Equal(t, 0, stats["job_connections"])

	// Unregister lần nữa không panic
	h.Unregister("job-1", conn)
}

func TestSendGenerationUpdateEmptyJobIDIsNoop(t *testing.T) {
	_, client := addJobClient(&H, "")
	defer func() {
		H.Mutex.Lock()
		delete(H.Clients, "")
		H.Mutex.Unlock()
	}()

	SendGenerationUpdate("", "started", 0, "", "")
	assert.Empty(t, client.Send)
}

func TestSendGenerationUpdatePayload(t *testing.T) {
	conn, client := addJobClient(&H, "job-9")
	defer H.Unregister("job-9", conn)

	SendGenerationUpdate("job-9", "saved", 100, "course-1", "")

	select {
	case msg := <-client.Send:
		var update GenerationStatusUpdate
		require.NoError(t, json.Unmarshal(msg, &update))
		assert.Equal(t, "job-9", update.JobID)
		assert.Equal(t, "saved", update.Status)
		assert.Equal(t, float64(100), update.Progress)
		assert.Equal(t, "course-1", update.CourseID)
	default:
		t.Fatal("không nhận được update")
	}
}

func TestGetStats(t *testing.T) {
	h := newTestHub()
	addJobClient(h, "job-1")
	addJobClient(h, "job-1")
	addJobClient(h, "job-2")

	stats := h.GetStats()
	assert.Equal(t, 3, stats["job_connections"])
	assert.Equal(t, 0, stats["global_connections"])
}
