package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"smartmenu/models"
	"smartmenu/utils"
)

// Event types pushed to connected dashboard clients.
const (
	EventOrderCreate     = "order_create"
	EventOrderUpdate     = "order_update"
	EventTableCreate     = "table_create"
	EventTableUpdate     = "table_update"
	EventTableDelete     = "table_delete"
	EventFeedbackCreate  = "feedback_create"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to all connected owner dashboards.
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> owner user id
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient adds a connection scoped to an owner account.
func RegisterClient(conn *websocket.Conn, userID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = userID
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreate announces a newly placed order to the owner's
// connected dashboards.
func BroadcastOrderCreate(order models.Order) {
	broadcast(order.UserID, Message{Event: EventOrderCreate, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(order.UserID, Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastTableCreate(table models.Table) {
	broadcast(table.UserID, Message{Event: EventTableCreate, Data: table})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(table.UserID, Message{Event: EventTableUpdate, Data: table})
}

func BroadcastTableDelete(table models.Table) {
	broadcast(table.UserID, Message{Event: EventTableDelete, Data: map[string]interface{}{"table_id": table.ID}})
}

func BroadcastFeedbackCreate(fb models.Feedback) {
	broadcast(fb.UserID, Message{Event: EventFeedbackCreate, Data: fb})
}

func BroadcastDashboardUpdate(userID uint, data interface{}) {
	broadcast(userID, Message{Event: EventDashboardUpdate, Data: data})
}

// broadcast sends the message to every client belonging to userID.
// userID 0 reaches everyone.
func broadcast(userID uint, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event %s: %v", msg.Event, err)
		return
	}

	for conn, owner := range hub.clients {
		if userID != 0 && owner != userID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s event: %v", msg.Event, err)
		}
	}
}
