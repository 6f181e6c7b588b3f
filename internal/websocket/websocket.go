package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/metrics"
	"github.com/abrezinsky/archeryscore/internal/models"
	"github.com/abrezinsky/archeryscore/internal/services"
)

// Message types exchanged with standings viewers.
const (
	TypeHello            = "hello"
	TypeStandingsChanged = "standings_changed"
	TypeSubscribe        = "subscribe"
)

const (
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 256
	broadcastCap = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST surface only
	},
}

var _ services.Broadcaster = (*Hub)(nil)

type envelope struct {
	competitionID int
	msg           models.WSMessage
}

// Hub maintains the set of connected standings viewers and fans out change
// notifications to them.
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan models.WSMessage
	// competition the viewer follows; 0 receives every competition
	competition atomic.Int64
}

// New creates a new Hub instance
func New(log logger.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, broadcastCap),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start begins the hub's main loop in a goroutine. The loop stops and
// disconnects every client when ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go h.run(ctx)
}

func (h *Hub) run(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			metrics.UpdateWebsocketClients(total)
			h.log.Debug("Client connected", "total_clients", total)

			// send is freshly buffered, so this never blocks
			client.send <- models.WSMessage{
				Type:    TypeHello,
				Payload: map[string]interface{}{"clients": total},
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			metrics.UpdateWebsocketClients(total)
			h.log.Debug("Client disconnected", "total_clients", total)

		case env := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				if !client.follows(env.competitionID) {
					continue
				}
				select {
				case client.send <- env.msg:
				default:
					// Client's send channel is full, unregister
					go h.drop(client)
				}
			}
			h.mutex.RUnlock()
			metrics.RecordBroadcast()
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.mutex.Unlock()
	close(h.done)
	metrics.UpdateWebsocketClients(0)
}

func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// BroadcastMessage sends a message to all connected clients. Messages are
// dropped when the hub is not keeping up or has stopped.
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.publish(envelope{msg: models.WSMessage{Type: msgType, Payload: payload}})
}

// BroadcastStandingsChanged implements services.Broadcaster
func (h *Hub) BroadcastStandingsChanged(competitionID int) {
	h.publish(envelope{
		competitionID: competitionID,
		msg: models.WSMessage{
			Type:    TypeStandingsChanged,
			Payload: map[string]interface{}{"competition_id": competitionID},
		},
	})
}

func (h *Hub) publish(env envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.log.Warn("Dropping websocket broadcast", "type", env.msg.Type)
	}
}

func (c *Client) follows(competitionID int) bool {
	want := c.competition.Load()
	return want == 0 || competitionID == 0 || want == int64(competitionID)
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}
		c.handle(message)
	}
}

type subscribePayload struct {
	CompetitionID int `json:"competition_id"`
}

func (c *Client) handle(message []byte) {
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(message, &msg); err != nil {
		c.hub.log.Debug("Ignoring malformed message", "error", err)
		return
	}

	switch msg.Type {
	case TypeSubscribe:
		var p subscribePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.CompetitionID < 0 {
			c.hub.log.Debug("Ignoring bad subscribe payload")
			return
		}
		c.competition.Store(int64(p.CompetitionID))
		c.hub.log.Debug("Client subscribed", "competition_id", p.CompetitionID)
	default:
		c.hub.log.Debug("Received message", "type", msg.Type)
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades the request and registers the connection with the hub.
// A competition query parameter pre-selects the subscription.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan models.WSMessage, sendBuffer),
	}
	if id, ok := competitionParam(r); ok {
		client.competition.Store(int64(id))
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func competitionParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("competition")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
