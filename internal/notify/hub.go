// internal/notify/hub.go
//
// Websocket hub pushing game state to connected clients.
// Responsibilities:
//   - Maintain the set of active clients; register/unregister via channels.
//   - Broadcast a fresh snapshot after every game mutation (implements
//     game.Broadcaster).
//   - Send the current snapshot to each client on connect, so late joiners
//     render immediately.
//   - Run the round clock: while a timed game is live, tick a countdown every
//     second and surface the timeout latch the moment it trips.

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hofgolf/go-server/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same-device client; origin enforcement happens at CORS
	},
}

// Message is the wire envelope for every push.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// SnapshotSource supplies the current game view. *game.Session satisfies it.
type SnapshotSource interface {
	Snapshot() game.Snapshot
	RoundTimedOut() bool
}

// Hub maintains the set of active clients and fans snapshots out to them.
type Hub struct {
	source     SnapshotSource
	clients    map[*client]bool
	broadcast  chan Message
	register   chan *client
	unregister chan *client
	mu         sync.RWMutex
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// New creates a hub over a snapshot source.
func New(source SnapshotSource) *Hub {
	return &Hub{
		source:     source,
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Start begins the hub's main loop in a goroutine.
func (h *Hub) Start() {
	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Debug().Int("totalClients", total).Msg("ws client connected")

			// Late joiners get the current state immediately. Sent from its
			// own goroutine: Snapshot takes the session lock, and a mutation
			// holding that lock may be parked on h.broadcast right now. The
			// run loop must never block on the snapshot source.
			go func() {
				c.send <- Message{Type: "game_state", Payload: h.source.Snapshot()}
			}()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Debug().Int("totalClients", total).Msg("ws client disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Send buffer full; drop the client.
					go func(c *client) { h.unregister <- c }(c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastGameState implements game.Broadcaster.
func (h *Hub) BroadcastGameState(snap game.Snapshot) {
	h.broadcast <- Message{Type: "game_state", Payload: snap}
}

// StartRoundClock ticks the countdown for timed games until ctx is done. Run
// it in its own goroutine.
func (h *Hub) StartRoundClock(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.tickRoundClock()
		}
	}
}

func (h *Hub) tickRoundClock() {
	h.mu.RLock()
	idle := len(h.clients) == 0
	h.mu.RUnlock()
	if idle {
		return
	}

	snap := h.source.Snapshot()
	if !snap.GameActive || snap.Active == nil || !snap.Active.Timed {
		return
	}
	h.broadcast <- Message{Type: "round_clock", Payload: map[string]any{
		"secondsRemaining": snap.RoundRemaining,
		"timedOut":         h.source.RoundTimedOut(),
	}}
}

// ServeWS upgrades the request and attaches the client to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan Message, 256)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains (and ignores) client messages, keeping the read deadline
// fresh via pongs.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("ws read")
			}
			return
		}
	}
}

// writePump pumps hub messages to the connection and pings on idle.
func (c *client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			raw, err := json.Marshal(msg)
			if err != nil {
				log.Warn().Err(err).Msg("ws encode")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
