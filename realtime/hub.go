package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dinehall/restaurant-foh/models"
)

// Event types
const (
	EventOrderCreate  = "order_create"
	EventOrderUpdate  = "order_update"
	EventTableUpdate  = "table_update"
	EventBoardRefresh = "board_refresh"
	EventStaffNotif   = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client FOH (staff, kitchen, admin) untuk broadcast.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount -> jumlah connection aktif
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastOrderCreate -> order baru masuk
func BroadcastOrderCreate(order models.Order) {
	broadcast(Message{Event: EventOrderCreate, Data: order})
}

// BroadcastOrderUpdate -> status order berubah
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastTableUpdate -> status meja berubah
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastBoardRefresh -> suruh client board ambil ulang daftar order
func BroadcastBoardRefresh() {
	broadcast(Message{Event: EventBoardRefresh, Data: nil})
}

// BroadcastStaffNotification -> notifikasi teks untuk staff
func BroadcastStaffNotification(text string) {
	broadcast(Message{Event: EventStaffNotif, Data: text})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	if len(hub.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			continue
		}
	}
}
