package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"library-server/internal/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API is CORS-open; the subscription endpoint follows.
		return true
	},
}

// SubscriptionHandler streams catalog change events to websocket
// clients. Each connection holds its own event bus subscription, so a
// client only sees events published while it is connected.
type SubscriptionHandler struct {
	bus *events.Bus
}

func NewSubscriptionHandler(bus *events.Bus) *SubscriptionHandler {
	return &SubscriptionHandler{bus: bus}
}

// BookAdded handles GET /subscriptions/books. Every bookAdded event is
// written to the socket as one JSON document.
func (h *SubscriptionHandler) BookAdded(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	messages, err := h.bus.SubscribeBookAdded(ctx)
	if err != nil {
		log.Error().Err(err).Msg("bookAdded subscription failed")
		_ = conn.Close()
		return
	}

	// Read pump: the client sends nothing meaningful, but reading is
	// required to process pongs and notice the peer going away.
	go func() {
		defer cancel()
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug().Err(err).Msg("websocket closed unexpectedly")
				}
				return
			}
		}
	}()

	h.writePump(conn, messages)
}

func (h *SubscriptionHandler) writePump(conn *websocket.Conn, messages <-chan *message.Message) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			book, err := events.DecodeBookAdded(msg)
			msg.Ack()
			if err != nil {
				log.Error().Err(err).Msg("dropping undecodable bookAdded event")
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(book); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
