package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/service/pubsub"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	conn     *websocket.Conn
	identity auth.Identity
	send     chan []byte
}

// canSee reports whether the event concerns a ticket this client may read.
func (c *Client) canSee(event *domain.TicketEvent) bool {
	if event.TenantID != c.identity.TenantID {
		return false
	}
	return c.identity.CanViewAllTickets() || event.ClientID == c.identity.UserID
}

// WebSocketHandler streams ticket events to connected users. Each tenant with
// at least one live connection holds one Redis subscription.
type WebSocketHandler struct {
	clients       map[*Client]bool
	register      chan *Client
	unregister    chan *Client
	mutex         sync.Mutex
	logger        *logger.Logger
	pubsub        *pubsub.RedisPubSub
	ctx           context.Context
	cancel        context.CancelFunc
	tenantClients map[string]int
}

func NewWebSocketHandler(logger *logger.Logger, pubsub *pubsub.RedisPubSub) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		logger:        logger,
		pubsub:        pubsub,
		ctx:           ctx,
		cancel:        cancel,
		tenantClients: make(map[string]int),
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context, id auth.Identity) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err), zap.String("user_id", id.UserID))
		return
	}

	client := &Client{
		conn:     conn,
		identity: id,
		send:     make(chan []byte, websocketSendChannelBufferSize),
	}

	select {
	case h.register <- client:
	case <-h.ctx.Done():
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			tenantID := client.identity.TenantID
			h.tenantClients[tenantID]++

			if h.tenantClients[tenantID] == 1 {
				if err := h.pubsub.Subscribe(h.ctx, tenantID, h.handlePubSubMessage); err != nil {
					h.logger.Error("Failed to subscribe to tenant events", err, zap.String("tenant_id", tenantID))
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			h.removeClient(client)
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.pubsub.Close()
}

// removeClient must be called with h.mutex held.
func (h *WebSocketHandler) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	tenantID := client.identity.TenantID
	h.tenantClients[tenantID]--
	if h.tenantClients[tenantID] == 0 {
		h.pubsub.Unsubscribe(tenantID)
		delete(h.tenantClients, tenantID)
	}
}

func (h *WebSocketHandler) handlePubSubMessage(event *domain.TicketEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal ticket event", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if !client.canSee(event) {
			continue
		}
		select {
		case client.send <- message:
		default:
			// slow consumer
			h.removeClient(client)
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer client.conn.Close()

	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
		}
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Unexpected websocket close", zap.String("user_id", client.identity.UserID), zap.Error(err))
			}
			return
		}
	}
}
