package web

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"ti-tracker/logger"
	"ti-tracker/pkg/chart"
	"ti-tracker/pkg/filter"
	"ti-tracker/services"
)

// WSMessage WebSocket消息结构
type WSMessage struct {
	Type      string      `json:"type"`
	MatchID   string      `json:"match_id,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// wsRequest 客户端请求
// {"type":"filter","heroes":["Axe"],"player":"","team":"","mode":"and"}
// {"type":"match","match_id":"7116846181"}
// {"type":"chart","match_id":"7116846181","kind":"kda"}
type wsRequest struct {
	Type    string   `json:"type"`
	Heroes  []string `json:"heroes"`
	Player  string   `json:"player"`
	Team    string   `json:"team"`
	Mode    string   `json:"mode"`
	MatchID string   `json:"match_id"`
	Kind    string   `json:"kind"`
}

// Client WebSocket客户端
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	service *services.DashboardService
}

// Hub WebSocket Hub
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *WSMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
}

// NewHub 创建新的Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *WSMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run 运行Hub, Stop 后退出
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Printf("Client registered. Total clients: %d", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Printf("Client unregistered. Total clients: %d", total)

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.done:
			h.drain()
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) deliver(message *WSMessage) {
	data := marshalMessage(message)
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// 发送队列已满, 断开慢客户端
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// drain 投递关闭前仍在队列中的广播
func (h *Hub) drain() {
	for {
		select {
		case message := <-h.broadcast:
			h.deliver(message)
		default:
			return
		}
	}
}

// Broadcast 向所有客户端广播
func (h *Hub) Broadcast(message *WSMessage) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// Stop 通知客户端并关闭全部连接
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.Broadcast(&WSMessage{Type: "shutdown", Timestamp: time.Now().Unix()})
		close(h.done)
	})
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// marshalMessage 序列化消息
func marshalMessage(message *WSMessage) []byte {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("Failed to marshal message: %v", err)
		return []byte("{}")
	}
	return data
}

// readPump 读取客户端消息
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump 向客户端写入消息
func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// sendMessage 单独回复当前客户端; hub 已关闭该连接时丢弃
func (c *Client) sendMessage(msg *WSMessage) {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}
	data := marshalMessage(msg)

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Errorf("WebSocket send buffer full, dropping %s reply", msg.Type)
	}
}

// handleMessage 处理客户端发送的消息
func (c *Client) handleMessage(message []byte) {
	var req wsRequest
	if err := json.Unmarshal(message, &req); err != nil {
		logger.Errorf("Failed to unmarshal client message: %v", err)
		c.sendError("", "invalid message")
		return
	}

	switch req.Type {
	case "filter":
		mode, err := filter.ParseCombinator(req.Mode)
		if err != nil {
			c.sendError("", "mode must be 'and' or 'or'")
			return
		}
		result := c.service.Filter(filter.Criteria{
			Heroes:     req.Heroes,
			Player:     req.Player,
			Team:       req.Team,
			Combinator: mode,
		})
		summaries := make([]services.MatchSummary, 0, len(result.Matches))
		for _, rec := range result.Matches {
			summaries = append(summaries, services.Summarize(rec))
		}
		c.sendMessage(&WSMessage{
			Type: "matches",
			Data: map[string]interface{}{
				"count":     len(summaries),
				"fell_back": result.FellBack,
				"matches":   summaries,
			},
		})

	case "match":
		match, found, _ := c.service.MatchDetail(req.MatchID)
		if !found {
			c.sendNotFound(req.MatchID)
			return
		}
		c.sendMessage(&WSMessage{Type: "match_detail", MatchID: req.MatchID, Data: match})

	case "chart":
		kind, err := chart.ParseKind(req.Kind)
		if err != nil {
			c.sendError(req.MatchID, "chart kind must be 'networth' or 'kda'")
			return
		}
		ch, found, err := c.service.Chart(req.MatchID, kind)
		if err != nil {
			c.sendError(req.MatchID, err.Error())
			return
		}
		if !found {
			c.sendNotFound(req.MatchID)
			return
		}
		c.sendMessage(&WSMessage{Type: "chart", MatchID: req.MatchID, Data: ch})

	default:
		c.sendError(req.MatchID, "unknown message type "+req.Type)
	}
}

func (c *Client) sendNotFound(matchID string) {
	c.sendMessage(&WSMessage{
		Type:    "not_found",
		MatchID: matchID,
		Data:    map[string]interface{}{"found": false, "message": notFoundMessage},
	})
}

func (c *Client) sendError(matchID, message string) {
	c.sendMessage(&WSMessage{
		Type:    "error",
		MatchID: matchID,
		Data:    map[string]interface{}{"message": message},
	})
}
