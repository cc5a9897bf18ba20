package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "move", "evaluate", "legal", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
	Code    string      `json:"code,omitempty"`    // Error code if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	ctx      context.Context
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
}

// WebSocket handles WebSocket connections for interactive play.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{ctx: r.Context(), conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "move":
		c.handleMove(msg)
	case "evaluate":
		c.handleEvaluate(msg)
	case "legal":
		c.handleLegal(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendError(msg.ID, "unknown message type", "")
	}
}

func (c *WSClient) sendError(id, text, code string) {
	c.sendChan <- WSResponse{Type: "error", ID: id, Error: text, Code: code}
}

func (c *WSClient) sendEngineError(id string, err error) {
	_, code := errorCode(err)
	c.sendError(id, err.Error(), code)
}

func (c *WSClient) handleMove(msg WSMessage) {
	var req MoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.ID, "invalid payload", CodeInvalidJSON)
		return
	}
	b, s, err := parsePosition(req.PositionRequest)
	if err != nil {
		c.sendEngineError(msg.ID, err)
		return
	}
	depth, err := c.handlers.resolveDepth(req.Depth)
	if err != nil {
		c.sendEngineError(msg.ID, err)
		return
	}
	release, err := c.handlers.searchSlot(c.ctx)
	if err != nil {
		c.sendError(msg.ID, "server busy", CodeServerBusy)
		return
	}
	res := c.handlers.analyze(b, s, depth)
	release()
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: analysisToResponse(res, b, req.NumMoves)}
}

func (c *WSClient) handleEvaluate(msg WSMessage) {
	var req EvaluateRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.ID, "invalid payload", CodeInvalidJSON)
		return
	}
	b, s, err := parsePosition(req.PositionRequest)
	if err != nil {
		c.sendEngineError(msg.ID, err)
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: evaluateResponse(b, s)}
}

func (c *WSClient) handleLegal(msg WSMessage) {
	var req LegalRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.ID, "invalid payload", CodeInvalidJSON)
		return
	}
	b, s, err := parsePosition(req.PositionRequest)
	if err != nil {
		c.sendEngineError(msg.ID, err)
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: legalResponse(b, s)}
}
