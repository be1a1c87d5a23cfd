package api

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

// Message types sent to websocket clients
const (
	MessageTypeState   = "state"
	MessageTypeEvent   = "event"
	MessageTypeHistory = "history"
)

var upgrader = websocket.Upgrader{
	// Badges open the page from any host the organisers print on them
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one frame pushed to a client
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// feedClient serializes writes; the two watches call back on their own goroutines
type feedClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (fc *feedClient) SafeWriteJSON(v any) error {
	fc.writeMu.Lock()
	defer fc.writeMu.Unlock()
	fc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return fc.conn.WriteJSON(v)
}

func (fc *feedClient) send(messageType string, data any) {
	if err := fc.SafeWriteJSON(Message{Type: messageType, Data: data}); err != nil {
		log.Printf("Error writing %s to websocket client: %v", messageType, err)
	}
}

// handleWebSocket streams the game document and public events until the
// client goes away. Recent events arrive once as a newest-first history
// frame; live events can overtake it, so clients dedupe by event ID.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &feedClient{conn: conn}

	stateSub, err := s.game.WatchGameState(ctx, func(state *models.GameState) {
		client.send(MessageTypeState, state)
	})
	if err != nil {
		log.Printf("Error watching game state: %v", err)
		return
	}
	defer stateSub.Close()

	eventSub, err := s.game.WatchEvents(ctx, &game.WatchEventsInput{
		Handler: func(e *models.GameEvent) {
			client.send(MessageTypeEvent, e)
		},
	})
	if err != nil {
		log.Printf("Error watching events: %v", err)
		return
	}
	defer eventSub.Close()

	history, err := s.game.ListEvents(ctx, &game.ListEventsInput{Limit: defaultEventLimit})
	if err != nil {
		log.Printf("Error listing recent events: %v", err)
		return
	}
	client.send(MessageTypeHistory, history.Events)

	// Clients only listen; reading detects the close
	conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
	}
}
