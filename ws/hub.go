package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // theo từng job sinh khóa học
	GlobalClients map[*websocket.Conn]*Client            // cho trang danh sách khóa học
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// GenerationStatusUpdate là trạng thái tiến trình sinh một khóa học
type GenerationStatusUpdate struct {
	JobID    string  `json:"job_id"`
	Status   string  `json:"status"` // started | outline_ready | videos_ready | saved | failed
	Progress float64 `json:"progress"`
	CourseID string  `json:"course_id,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Register theo jobID riêng
func (h *Hub) Register(jobID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[jobID]; !ok {
		h.Clients[jobID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Clients[jobID][conn] = client

	// Handler giữ vòng đọc duy nhất trên conn, hub chỉ chạy vòng ghi
	go h.writePump(jobID, conn)
}

// Register global cho trang danh sách
func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.GlobalClients[conn] = client

	go h.writeGlobalPump(conn)
}

// Broadcast theo jobID
func (h *Hub) Broadcast(jobID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[jobID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// BroadcastGlobal gửi cho toàn bộ client trang danh sách
func (h *Hub) BroadcastGlobal(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// GetStats trả số lượng kết nối đang mở (cho health check)
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	jobConns := 0
	for _, clients := range h.Clients {
		jobConns += len(clients)
	}
	return map[string]int{
		"job_connections":    jobConns,
		"global_connections": len(h.GlobalClients),
	}
}

// SendGenerationUpdate gửi trạng thái tiến trình sinh khóa học theo jobID
func SendGenerationUpdate(jobID, status string, progress float64, courseID, errorMsg string) {
	if jobID == "" {
		return
	}
	update := GenerationStatusUpdate{
		JobID:    jobID,
		Status:   status,
		Progress: progress,
		CourseID: courseID,
		Error:    errorMsg,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(jobID, data)
}

// BroadcastCourseListChanged báo trang danh sách reload sau khi tạo/xóa/import
func BroadcastCourseListChanged() {
	H.BroadcastGlobal([]byte(`{"type": "course_list_changed"}`))
}

// Unregister client theo jobID
func (h *Hub) Unregister(jobID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[jobID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, jobID)
		}
	}
}

// Unregister global client
func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

func (h *Hub) writePump(jobID string, conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.Clients[jobID][conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func (h *Hub) writeGlobalPump(conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.GlobalClients[conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
