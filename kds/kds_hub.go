package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/dinein-app/models"
	"github.com/yeremiapane/dinein-app/utils"
)

// Event types
const (
	EventSessionOpen  = "session_open"
	EventSessionClose = "session_close"
	EventOrderUpdate  = "order_update"
	EventOrderDelete  = "order_delete"
	EventTableCreate  = "table_create"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub menampung semua client display (chef, staff, admin) untuk broadcast
type KDSHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

// BroadcastSessionOpen -> meja baru saja di-seat
func BroadcastSessionOpen(session models.TableSession) {
	broadcast(Message{
		Event: EventSessionOpen,
		Data:  session,
	})
}

// BroadcastSessionClose -> sesi ditutup, bill final
func BroadcastSessionClose(session models.TableSession) {
	broadcast(Message{
		Event: EventSessionClose,
		Data:  session,
	})
}

// BroadcastOrderUpdate -> order dibuat/di-toggle/berubah item
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastOrderDelete -> order dihapus dari antrian dapur
func BroadcastOrderDelete(orderID uint) {
	broadcast(Message{
		Event: EventOrderDelete,
		Data:  map[string]interface{}{"order_id": orderID},
	})
}

// BroadcastTableCreate -> meja baru ditambahkan ke floor plan
func BroadcastTableCreate(table models.DiningTable) {
	broadcast(Message{
		Event: EventTableCreate,
		Data:  table,
	})
}

// broadcast -> fungsi internal untuk mengirim pesan ke semua client
func broadcast(msg Message) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		}
		return
	}

	for conn := range kdsHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			continue
		}
	}
}
