// Package httpserver exposes the display control API: REST endpoints, the
// polling command queue and the websocket upgrade, all feeding the shared
// dispatch path.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/whaeuser/splitflap/internal/control"
	"github.com/whaeuser/splitflap/internal/model"
)

// Version is reported by the status endpoint. It tracks the original
// protocol version the wire format is compatible with.
const Version = "2.0.0"

// Server provides the HTTP and websocket API for controlling the display.
type Server struct {
	addr    string
	center  *control.Center
	hub     *control.Hub
	apiKey  string
	limiter *RateLimiter

	server *http.Server
	ctx    context.Context
	cancel context.CancelFunc
}

// Config carries the server's tunables. Zero values fall back to defaults;
// an empty APIKey disables the key check.
type Config struct {
	Addr              string
	APIKey            string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewServer creates an HTTP API server in front of the dispatch center.
func NewServer(cfg Config, center *control.Center, hub *control.Hub) *Server {
	if cfg.Addr == "" {
		cfg.Addr = model.DefaultHTTPAddr
	}
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = model.DefaultRateLimitRequests
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = model.DefaultRateLimitWindow
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    cfg.Addr,
		center:  center,
		hub:     hub,
		apiKey:  cfg.APIKey,
		limiter: NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Handler builds the routed handler. Exposed for httptest.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware)

	api := r.Group("/api", s.rateLimitMiddleware, s.apiKeyMiddleware)
	api.GET("/status", s.handleStatus)
	api.GET("/display", s.handleGetDisplay)
	api.GET("/commands", s.handlePollCommands)
	api.POST("/display", s.handleSetDisplay)
	api.POST("/clear", s.handleClear)
	api.POST("/demo", s.handleDemo)
	api.POST("/datetime", s.handleDateTime)
	api.POST("/mode/:name", s.handleMode)

	r.GET("/ws", s.handleWebSocket)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) corsMiddleware(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func (s *Server) rateLimitMiddleware(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}
	c.Next()
}

func (s *Server) apiKeyMiddleware(c *gin.Context) {
	if s.apiKey != "" && c.GetHeader("X-API-Key") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid API key"})
		return
	}
	c.Next()
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"display": "split-flap",
		"lines":   model.Rows,
		"version": Version,
		"features": []string{
			"websocket", "polling", "datetime", "demo", "modes",
			"colors", "rate-limiting",
		},
		"clients": s.center.ClientCount(),
	})
}

func (s *Server) handleGetDisplay(c *gin.Context) {
	c.JSON(http.StatusOK, s.center.Snapshot())
}

func (s *Server) handlePollCommands(c *gin.Context) {
	c.JSON(http.StatusOK, s.center.PollCommand())
}

func (s *Server) handleSetDisplay(c *gin.Context) {
	var cmd model.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	cmd.Action = model.ActionSetDisplay
	if err := s.center.Dispatch(cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "display updated"})
}

func (s *Server) handleClear(c *gin.Context) {
	if err := s.center.Dispatch(model.Command{Action: model.ActionClear}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "display cleared"})
}

func (s *Server) handleDemo(c *gin.Context) {
	if err := s.center.Dispatch(model.Command{Action: model.ActionDemo}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "demo started"})
}

func (s *Server) handleDateTime(c *gin.Context) {
	var cmd model.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	cmd.Action = model.ActionDateTime
	if err := s.center.Dispatch(cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	enabled := cmd.Enable == nil || *cmd.Enable
	msg := "datetime enabled"
	if !enabled {
		msg = "datetime disabled"
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": msg})
}

func (s *Server) handleMode(c *gin.Context) {
	var cmd model.Command
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&cmd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}
	cmd.Action = model.ActionMode
	cmd.Mode = c.Param("name")
	if err := s.center.Dispatch(cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "mode " + cmd.Mode})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST surface is already wide open via CORS; the websocket
	// follows the same policy.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := s.hub.Add(conn)
	defer s.hub.Remove(client)

	// State push on connect lets a new viewer render before any command.
	snapshot := s.center.Snapshot()
	if err := client.Send(model.Command{Action: model.ActionState, Data: &snapshot}); err != nil {
		return
	}

	for {
		var cmd model.Command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		if cmd.Action == model.ActionGetState {
			snap := s.center.Snapshot()
			if err := client.Send(model.Command{Action: model.ActionState, Data: &snap}); err != nil {
				return
			}
			continue
		}
		if err := s.center.Dispatch(cmd); err != nil {
			client.Send(model.Command{Action: "error", Text: err.Error()})
		}
	}
}
