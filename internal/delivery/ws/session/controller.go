package ws_session

import (
	"log/slog"
	"net/http"

	"github.com/boardswap/core/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is checked by the reverse proxy in front of us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sessions/:session_code/ws", c.serve)
}

func (c *Controller) serve(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_code"))

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("ws upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		Hub:       c.hub,
		Conn:      conn,
		Send:      make(chan []byte, 16),
		SessionID: sessionID,
	}

	c.hub.RegisterClient(client)
	go c.hub.StartClientWriting(client)
	go c.hub.StartClientReading(client)
}
