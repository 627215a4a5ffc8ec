package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the API handler
type Server struct {
	service services.Service
	router  *gin.Engine
	server  *http.Server
	log     *logging.Logger
}

// NewServer creates a new API server
func NewServer(service services.Service, port string, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), httpMetrics())

	s := &Server{
		service: service,
		router:  router,
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log.Sub("api"),
	}
	router.Use(s.requestLogger())
	s.registerRoutes(router)

	return s
}

// SendMessageRequest represents the request body for sending messages
type SendMessageRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	ReplyTo   string `json:"reply_to"`
}

// Response represents a generic API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// RegisterRoutes registers all API routes
func (s *Server) registerRoutes(router *gin.Engine) {
	router.POST("/webhook", s.handleWebhook)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/qr", s.handleQR)
		api.GET("/status", s.handleStatus)
		api.POST("/logout", s.handleLogout)
		api.POST("/send", s.handleSendMessage)
		api.GET("/chats", s.handleGetChats)
		api.GET("/messages", s.handleGetMessages)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting gateway server")
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	}
}
