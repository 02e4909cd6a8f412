// Package transport adapts the chat gateway to the conversation
// engine: a webhook server for inbound update events and an HTTP
// sender for outbound messages. The conversation core never sees any
// of this, only the Update and Sender contracts.
package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuyAfik/MrKnowledgeBot/internal/bot"
	"github.com/GuyAfik/MrKnowledgeBot/internal/middleware"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// WebhookUpdate is an inbound update event from the chat gateway.
type WebhookUpdate struct {
	Chat     int64  `json:"chat_id"`
	Text     string `json:"text"`
	Callback string `json:"callback_data"`
}

func (u WebhookUpdate) ChatID() int64          { return u.Chat }
func (u WebhookUpdate) MessageText() string    { return u.Text }
func (u WebhookUpdate) CallbackAnswer() string { return u.Callback }

// Server receives update events over HTTP and feeds them to the bot.
type Server struct {
	engine *gin.Engine
	bot    *bot.Bot
	token  string
	logger logger.Logger
}

// NewServer builds the webhook router. token, when non-empty, must be
// presented by the gateway in the X-Bot-Token header.
func NewServer(b *bot.Bot, token string, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine: gin.New(),
		bot:    b,
		token:  token,
		logger: log,
	}
	s.engine.Use(gin.Recovery())
	s.engine.Use(middleware.CORS())
	s.engine.Use(middleware.Gzip())
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/webhook", s.handleWebhook)
	return s
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	s.logger.Infof("[Transport] webhook server listening on port %s", port)
	return s.engine.Run(":" + port)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleWebhook(c *gin.Context) {
	if s.token != "" && c.GetHeader("X-Bot-Token") != s.token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var update WebhookUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}
	if update.Chat == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id is required"})
		return
	}

	s.bot.HandleUpdate(update)
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}
