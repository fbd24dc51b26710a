package endpoints

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/db"
	"github.com/igini-labs/chulseok/internal/http/api"
	"github.com/igini-labs/chulseok/internal/http/api/panel/packets"
	"github.com/igini-labs/chulseok/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatusHub pushes the aggregate schedule list to connected panels
// whenever a schedule changes.
type StatusHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewStatusHub() *StatusHub {
	return &StatusHub{conns: map[*websocket.Conn]struct{}{}}
}

func (h *StatusHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *StatusHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends the status list to every watcher. Dead connections
// are dropped on write failure.
func (h *StatusHub) Broadcast(rows []model.ScheduleStatus) {
	if rows == nil {
		rows = []model.ScheduleStatus{}
	}
	payload := packets.ScheduleStatusResponse{Schedules: rows}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(payload); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// StatusModule mounts the live status feed.
func StatusModule(store db.Store, hub *StatusHub) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW(http.MethodGet, "/status/ws", statusWebSocket(store, hub))
	})
}

func statusWebSocket(store db.Store, hub *StatusHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		hub.add(conn)
		defer hub.remove(conn)

		// initial snapshot so the panel renders without waiting for a change
		if rows, err := store.ListAllScheduleEntries(); err == nil {
			if rows == nil {
				rows = []model.ScheduleStatus{}
			}
			if err := conn.WriteJSON(packets.ScheduleStatusResponse{Schedules: rows}); err != nil {
				return
			}
		}

		// keep the connection alive
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
