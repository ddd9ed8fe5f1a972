// Package notifier pushes field definition change events to board
// subscribers over WebSocket, so open board views can refresh their
// field schema without polling.
package notifier

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/repository"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// TokenParser validates a raw bearer token and returns the caller's auth
// context. A nil parser disables the token check.
type TokenParser func(token string) (*domain.AuthContext, error)

// Client is one subscriber connection bound to a board
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	boardID uuid.UUID
}

// Hub tracks board subscribers and fans field change events out to them
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client

	boardRepo  repository.BoardRepository
	parseToken TokenParser
	logger     *zap.Logger
}

// NewHub creates a hub and starts its registration loop
func NewHub(boardRepo repository.BoardRepository, parseToken TokenParser, logger *zap.Logger) *Hub {
	hub := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		boardRepo:  boardRepo,
		parseToken: parseToken,
		logger:     logger,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.boardID] == nil {
				h.clients[client.boardID] = make(map[*Client]bool)
			}
			h.clients[client.boardID][client] = true
			h.clientsMu.Unlock()

			h.logger.Info("Board subscriber registered",
				zap.String("board_id", client.boardID.String()))

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.boardID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.boardID)
					}
				}
			}
			h.clientsMu.Unlock()

			h.logger.Info("Board subscriber unregistered",
				zap.String("board_id", client.boardID.String()))
		}
	}
}

// NotifyFieldChange broadcasts a field change event to the board's
// subscribers. Send never blocks; a subscriber that cannot keep up is
// dropped.
func (h *Hub) NotifyFieldChange(event *dto.FieldChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("Failed to encode field change event", zap.Error(err))
		return
	}

	// Snapshot the subscribers under the lock; the map must not be iterated
	// while run() mutates it
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients[event.BoardID]))
	for client := range h.clients[event.BoardID] {
		clients = append(clients, client)
	}
	h.clientsMu.RUnlock()

	var dropped []*Client
	for _, client := range clients {
		select {
		case client.send <- payload:
		default:
			dropped = append(dropped, client)
		}
	}
	for _, client := range dropped {
		h.unregister <- client
	}
}

// SubscriberCount reports the number of live subscribers for a board
func (h *Hub) SubscriberCount(boardID uuid.UUID) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[boardID])
}

// HandleBoardWebSocket godoc
// @Summary      Subscribe to board field changes
// @Description  Opens a WebSocket that receives field definition change events for a board
// @Tags         websocket
// @Param        boardId path string true "Board ID"
// @Param        token query string false "JWT Access Token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} map[string]string
// @Router       /ws/boards/{boardId} [get]
func (h *Hub) HandleBoardWebSocket(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var auth *domain.AuthContext
	if h.parseToken != nil {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}
		auth, err = h.parseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
	}

	board, err := h.boardRepo.FindByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify board"})
		return
	}
	if auth != nil && !auth.HasOrganization(board.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organization"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		boardID: boardID,
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

// readPump drains inbound frames; subscribers are read-only so anything
// other than control frames is discarded
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
