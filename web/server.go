package web

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rotisserie/eris"
	"github.com/rs/cors"

	"ti-tracker/config"
	"ti-tracker/logger"
	"ti-tracker/pkg/common"
	"ti-tracker/services"
)

type Server struct {
	config     *config.Config
	service    *services.DashboardService
	wsHub      *Hub
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

func NewServer(cfg *config.Config, service *services.DashboardService, hub *Hub) *Server {
	origins := cfg.AllowedOrigins()
	return &Server{
		config:  cfg,
		service: service,
		wsHub:   hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(origins, r.Header.Get("Origin"))
			},
		},
	}
}

// Handler 构建路由 (含 CORS)
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	// API路由
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/heroes", s.handleGetHeroes).Methods("GET")
	api.HandleFunc("/matches", s.handleGetMatches).Methods("GET")
	api.HandleFunc("/matches/{match_id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{match_id}/charts/{kind}", s.handleGetChart).Methods("GET")

	// WebSocket路由
	router.HandleFunc("/ws", s.handleWebSocket)

	// 静态文件
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.config.StaticDir)))

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins(),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Cache"},
	})

	return c.Handler(router)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Printf("[Server] Listening on :%s", s.config.Port)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer == nil {
		return
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"time":       time.Now().Unix(),
		"matches":    s.service.Dataset().Len(),
		"heroes":     s.service.Dataset().Heroes().Len(),
		"ws_clients": s.wsHub.ClientCount(),
	})
}

// handleGetHeroes 英雄选项
// GET /api/heroes
func (s *Server) handleGetHeroes(w http.ResponseWriter, r *http.Request) {
	heroes := s.service.Heroes()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(heroes),
		"heroes":  heroes,
	})
}

// handleWebSocket WebSocket连接处理
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:     s.wsHub,
		conn:    conn,
		send:    make(chan []byte, 256),
		service: s.service,
	}

	// 发送欢迎消息
	client.send <- marshalMessage(&WSMessage{
		Type:      "connected",
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"message": "Connected to TI match dashboard",
			"matches": s.service.Dataset().Len(),
		},
	})

	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	message := err.Error()
	var appErr *common.AppError
	if eris.As(err, &appErr) {
		message = appErr.Message
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   common.CodeOf(err),
		"message": message,
	})
}
